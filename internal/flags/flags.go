package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// engine. Keeping these as constants helps avoid drift between Cobra flag
// wiring and other code paths that need to reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Inputs
	FlagPackages   = "packages"
	FlagScanConfig = "scan-config"
	FlagFailOn     = "fail-on"
	FlagAPIURL     = "api-url"
	FlagDir        = "dir"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagEmit          = "emit"
	FlagNoConsole     = "no-console"
	FlagSummary       = "summary"
	FlagComment       = "comment"

	// Runtime
	FlagTimeout = "timeout"
)
