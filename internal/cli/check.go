package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"skillgate/internal/config"
	"skillgate/internal/engine"
	"skillgate/internal/flags"
	gh "skillgate/internal/github"
	"skillgate/internal/registry"
)

var cfg = config.New()

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check packages against the trust registry",
	Long: `Check a set of package identifiers against the trust registry and fail the
build when any package's risk rating exceeds the configured threshold.

Packages come from --packages (comma-separated) and, with --scan-config, from
manifest files under --dir (package.json dependencies/devDependencies and
requirements.txt entries). A missing or malformed manifest is a warning, not
a failure.

Threshold modes (--fail-on):
	unsafe   fail only on packages rated unsafe (default)
	caution  fail on caution or unsafe
	any      fail on anything not rated safe, including unknown packages

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --no-console: suppress the console sink (use with --emit/--out)
	The markdown report is appended to --summary, or to $GITHUB_STEP_SUMMARY
	when unset, or logged when neither is available. When $GITHUB_OUTPUT is
	set, results (JSON) and has-issues (boolean string) are appended there.

	With --comment OWNER/REPO#NUMBER the report is also posted as an issue or
	pull-request comment. This needs a GitHub token: GITHUB_TOKEN, or GitHub
	CLI authentication via gh auth token.

Exit codes:
	0 = clean run (including nothing to scan)
	1 = one or more packages exceed the threshold
	2 = fatal error (configuration, registry unreachable, bad response, timeout)

Examples:
	# Fail the build on unsafe packages
	skillgate check --packages left-pad,requests

	# Auto-detect packages from manifests and be strict
	skillgate check --scan-config --fail-on any

	# AI agent: stream machine-readable events to stdout
	skillgate check --packages left-pad --no-console --emit ndjson

	# Post the report on the pull request
	skillgate check --packages left-pad --comment acme/widgets#42
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitFatal)
		}

		ctx := context.Background()

		client, err := registry.NewClient(cfg.Inputs.APIURL, cfg.Runtime.Timeout,
			registry.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(engine.ExitFatal)
		}

		eng := engine.New(client)
		if cfg.Output.Comment != "" {
			commenter, err := newCommenter(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(engine.ExitFatal)
			}
			eng.Commenter = commenter
		}

		os.Exit(eng.Run(ctx, cfg))
	},
}

func newCommenter(ctx context.Context) (engine.Commenter, error) {
	token, _, err := gh.ResolveAuthToken(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GitHub auth token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("--comment requires a GitHub auth token (set GITHUB_TOKEN or run 'gh auth login')")
	}
	client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// MAINTAINER NOTE: If you add/change/remove any check-affecting flags
	// here, keep the config fields in internal/config/config.go in sync.

	// Inputs
	checkCmd.Flags().StringVar(&cfg.Inputs.Packages, flags.FlagPackages, "", "Comma-separated package identifiers to check")
	checkCmd.Flags().BoolVar(&cfg.Inputs.ScanConfig, flags.FlagScanConfig, false, "Auto-detect package identifiers from manifest files under --dir")
	checkCmd.Flags().StringVar(&cfg.Inputs.FailOn, flags.FlagFailOn, cfg.Inputs.FailOn, "Threshold mode: unsafe|caution|any")
	checkCmd.Flags().StringVar(&cfg.Inputs.APIURL, flags.FlagAPIURL, cfg.Inputs.APIURL, "Trust registry base URL")
	checkCmd.Flags().StringVar(&cfg.Inputs.Dir, flags.FlagDir, cfg.Inputs.Dir, "Root directory probed for manifest files")

	// Output
	checkCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson")
	checkCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	checkCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	checkCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	checkCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out)")
	checkCmd.Flags().StringVar(&cfg.Output.Summary, flags.FlagSummary, "", "Append the markdown report to this path (default: $GITHUB_STEP_SUMMARY)")
	checkCmd.Flags().StringVar(&cfg.Output.Comment, flags.FlagComment, "", "Post the markdown report as a comment: OWNER/REPO#NUMBER")

	// Runtime
	checkCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Registry request timeout")
}
