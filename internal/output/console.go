package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"skillgate/internal/scan"
)

// ConsoleSink is the human-facing sink.
//
// Formats:
//   - text: one colored line per package plus a closing summary line
//   - json: aggregates results and writes a single JSON array on Close
//   - ndjson: streams Events (one JSON object per line)
type ConsoleSink struct {
	writer  io.Writer
	format  string // "text", "json", "ndjson"
	mu      sync.Mutex
	results []scan.Result
	summary *Summary
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		if r, ok := v.(scan.Result); ok {
			s.results = append(s.results, r)
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case scan.Result:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Summary:
			if err := encoder.Encode(eventFromSummary(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case scan.Result:
			return s.writeTextResult(t)
		case Summary:
			sum := t
			s.summary = &sum
			return nil
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeTextResult(r scan.Result) error {
	status := statusWord(r)
	line := fmt.Sprintf("[%s] %s: %s", status, r.Identifier, r.Rating)
	if !r.Found {
		line += " (not in database)"
	}
	if r.ExceedsThreshold {
		line += " - exceeds threshold"
	}

	var err error
	switch {
	case r.ExceedsThreshold:
		_, err = color.New(color.FgRed).Fprintln(s.writer, line)
	case !r.Found:
		_, err = color.New(color.FgYellow).Fprintln(s.writer, line)
	default:
		_, err = color.New(color.FgGreen).Fprintln(s.writer, line)
	}
	if err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func statusWord(r scan.Result) string {
	switch {
	case r.ExceedsThreshold:
		return "FAIL"
	case !r.Found:
		return "UNKNOWN"
	default:
		return "OK"
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	case "text":
		if s.summary == nil {
			return nil
		}
		fmt.Fprintf(s.writer, "Threshold: %s. Packages scanned: %d.\n", s.summary.Threshold, s.summary.Scanned)
		if s.summary.HasIssues {
			color.New(color.FgRed, color.Bold).Fprintln(s.writer, "One or more packages exceed the configured risk threshold.")
		}
		return flushIfPossible(s.writer)
	case "ndjson":
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}
