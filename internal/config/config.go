package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"skillgate/internal/rating"
)

// DefaultAPIURL points at the production trust registry.
const DefaultAPIURL = "https://skillshub.dev"

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// check behavior, keep the CLI flags in internal/cli/check.go in sync.
	Inputs  Inputs
	Output  Output
	Runtime Runtime

	// threshold is the parsed --fail-on value, populated by Validate.
	threshold rating.Threshold
}

type Inputs struct {
	// Packages is the comma-separated list of explicit package identifiers
	// to check (see --packages). May be empty when auto-detection is on.
	Packages string

	// ScanConfig enables auto-detection of package identifiers from manifest
	// files under Dir (see --scan-config).
	ScanConfig bool

	// FailOn is the threshold mode controlling which ratings fail the build
	// (see --fail-on). Allowed values: unsafe, caution, any.
	FailOn string

	// APIURL is the trust registry base URL (see --api-url).
	APIURL string

	// Dir is the root directory probed for manifest files (see --dir).
	Dir string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format
	// (see --console-format). Allowed values: text, json, ndjson.
	ConsoleFormat string

	// Out writes the structured outcome to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, inferred from the extension.
	OutFormat string

	// Emit writes an additional structured stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// Summary overrides the markdown report destination (see --summary).
	// When empty, the report goes to $GITHUB_STEP_SUMMARY if set, else to
	// the log.
	Summary string

	// Comment posts the markdown report as a GitHub issue/PR comment
	// (see --comment). Format: OWNER/REPO#NUMBER.
	Comment string
}

type Runtime struct {
	// Timeout bounds the registry fetch (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose enables detailed diagnostics (prints every registry API call
	// and full error details).
	Verbose bool
}

func New() *Config {
	return &Config{
		Inputs: Inputs{
			FailOn: string(rating.ThresholdUnsafe),
			APIURL: DefaultAPIURL,
			Dir:    ".",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Timeout: 30 * time.Second,
		},
	}
}

// Threshold returns the parsed --fail-on mode. Only meaningful after a
// successful Validate.
func (c *Config) Threshold() rating.Threshold {
	return c.threshold
}

func (c *Config) Validate() error {
	// Threshold mode: unrecognized values fail fast, never default.
	t, err := rating.ParseThreshold(c.Inputs.FailOn)
	if err != nil {
		return err
	}
	c.threshold = t
	c.Inputs.FailOn = string(t)

	// Registry URL
	c.Inputs.APIURL = strings.TrimRight(strings.TrimSpace(c.Inputs.APIURL), "/")
	if c.Inputs.APIURL == "" {
		return errors.New("--api-url must not be empty")
	}
	u, err := url.Parse(c.Inputs.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid --api-url: %q", c.Inputs.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported --api-url scheme: %s (must be http or https)", u.Scheme)
	}

	if c.Inputs.Dir == "" {
		c.Inputs.Dir = "."
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	if c.Output.Comment != "" {
		if _, _, _, err := ParseCommentTarget(c.Output.Comment); err != nil {
			return err
		}
	}

	// Runtime validation
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

// ParseCommentTarget parses a --comment value of the form OWNER/REPO#NUMBER.
func ParseCommentTarget(raw string) (owner, repo string, number int, err error) {
	badFormat := func() error {
		return fmt.Errorf("invalid --comment value %q: expected OWNER/REPO#NUMBER", raw)
	}

	repoPart, numPart, ok := strings.Cut(strings.TrimSpace(raw), "#")
	if !ok {
		return "", "", 0, badFormat()
	}
	owner, repo, ok = strings.Cut(repoPart, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", 0, badFormat()
	}
	number, parseErr := strconv.Atoi(strings.TrimSpace(numPart))
	if parseErr != nil || number <= 0 {
		return "", "", 0, badFormat()
	}
	return owner, repo, number, nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
