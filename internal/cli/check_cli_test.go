package cli

import (
	"bytes"
	"strings"
	"testing"

	"skillgate/internal/flags"
)

func TestCheckFlagsRegistered(t *testing.T) {
	for _, name := range []string{
		flags.FlagPackages,
		flags.FlagScanConfig,
		flags.FlagFailOn,
		flags.FlagAPIURL,
		flags.FlagDir,
		flags.FlagConsoleFormat,
		flags.FlagOut,
		flags.FlagOutFormat,
		flags.FlagEmit,
		flags.FlagNoConsole,
		flags.FlagSummary,
		flags.FlagComment,
		flags.FlagTimeout,
	} {
		if checkCmd.Flags().Lookup(name) == nil {
			t.Errorf("check command missing flag --%s", name)
		}
	}
}

func TestCheckFlagDefaults(t *testing.T) {
	if got := checkCmd.Flags().Lookup(flags.FlagFailOn).DefValue; got != "unsafe" {
		t.Errorf("--fail-on default = %q, want unsafe", got)
	}
	if got := checkCmd.Flags().Lookup(flags.FlagTimeout).DefValue; got != "30s" {
		t.Errorf("--timeout default = %q, want 30s", got)
	}
	if got := checkCmd.Flags().Lookup(flags.FlagDir).DefValue; got != "." {
		t.Errorf("--dir default = %q, want .", got)
	}
}

func TestVersionCommand(t *testing.T) {
	SetBuildInfo("1.2.3", "abc123", "2026-01-02")

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	if !strings.Contains(out, "skillgate 1.2.3") {
		t.Fatalf("version output missing version:\n%s", out)
	}
	if !strings.Contains(out, "commit: abc123") {
		t.Fatalf("version output missing commit:\n%s", out)
	}
}
