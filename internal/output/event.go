package output

import (
	"skillgate/internal/rating"
	"skillgate/internal/scan"
)

// Summary is the terminal record of a run, delivered to every sink after
// the last result.
type Summary struct {
	Threshold rating.Threshold `json:"threshold"`
	Scanned   int              `json:"scanned"`
	HasIssues bool             `json:"has_issues"`
}

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - package.result
// - run.finished
// JSON mode remains an aggregate of scan.Result values.
type Event struct {
	Type      string           `json:"type"`
	Result    *scan.Result     `json:"result,omitempty"`
	Threshold rating.Threshold `json:"threshold,omitempty"`
	Scanned   int              `json:"scanned,omitempty"`
	HasIssues bool             `json:"has_issues,omitempty"`
}

func eventFromResult(r scan.Result) Event {
	return Event{Type: "package.result", Result: &r}
}

func eventFromSummary(s Summary) Event {
	return Event{Type: "run.finished", Threshold: s.Threshold, Scanned: s.Scanned, HasIssues: s.HasIssues}
}
