package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "skillgate",
	Short: "Gate CI builds on trust-registry risk ratings",
	Long: `Skillgate checks package identifiers against a remote trust registry and
fails the build when any package's risk rating exceeds a configured threshold.

Skillgate performs no static or dynamic analysis: it only queries the
precomputed rating the registry holds for each named package.

Examples:
	# Show available commands and global flags
	skillgate --help

	# Check two packages with the default threshold (unsafe)
	skillgate check --packages left-pad,requests

	# Print build info
	skillgate version

Output:
	By default, commands write human-readable output to stdout.
	The check command supports structured output via emitter flags
	(see "skillgate check --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every registry API call and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
