package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"skillgate/internal/scan"
)

// outputsEnv is the pipeline outputs file provided by GitHub Actions
// runners (one key=value per line).
const outputsEnv = "GITHUB_OUTPUT"

// WriteOutputs appends the machine-readable run outputs to the pipeline
// outputs file: results as compact JSON, has-issues as a boolean string.
// When no outputs file is configured, this is a no-op.
func WriteOutputs(outcome scan.Outcome) error {
	path := os.Getenv(outputsEnv)
	if path == "" {
		return nil
	}

	raw, err := json.Marshal(outcome.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open outputs file: %w", err)
	}
	_, err = fmt.Fprintf(f, "results=%s\nhas-issues=%s\n", raw, strconv.FormatBool(outcome.HasIssues))
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
