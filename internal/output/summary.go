package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"skillgate/internal/rating"
	"skillgate/internal/scan"
)

// stepSummaryEnv is the build-log artifact location provided by GitHub
// Actions runners.
const stepSummaryEnv = "GITHUB_STEP_SUMMARY"

// SummarySink renders the markdown report on Close and appends it to the
// build-log artifact location. Destination precedence: the explicit
// --summary path, then $GITHUB_STEP_SUMMARY, then an informational dump to
// the fallback writer (typically stderr).
type SummarySink struct {
	path      string
	fallback  io.Writer
	threshold rating.Threshold
	mu        sync.Mutex
	results   []scan.Result
	hasIssues bool
}

func NewSummarySink(path string, fallback io.Writer, threshold rating.Threshold) *SummarySink {
	if path == "" {
		path = os.Getenv(stepSummaryEnv)
	}
	if fallback == nil {
		fallback = os.Stderr
	}
	return &SummarySink{path: path, fallback: fallback, threshold: threshold}
}

func (s *SummarySink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case scan.Result:
		s.results = append(s.results, t)
	case Summary:
		s.hasIssues = t.HasIssues
	}
	return nil
}

func (s *SummarySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	md := Markdown(scan.Outcome{Results: s.results, HasIssues: s.hasIssues}, s.threshold)

	if s.path == "" {
		_, err := fmt.Fprintf(s.fallback, "Summary (no build-log location configured):\n%s", md)
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	if _, err := f.WriteString(md); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append summary: %w", err)
	}
	return f.Close()
}
