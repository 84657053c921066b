package scan

import "skillgate/internal/rating"

// Result is the per-identifier verdict for one run. Results are immutable
// after Resolve and preserve the working set's collection order.
type Result struct {
	Identifier       string        `json:"package"`
	Found            bool          `json:"found"`
	Rating           rating.Rating `json:"rating"`
	ExceedsThreshold bool          `json:"exceeds_threshold"`
	DisplayName      string        `json:"display_name,omitempty"`
	URL              string        `json:"url,omitempty"`
	Findings         []string      `json:"findings,omitempty"`
	Reason           string        `json:"reason,omitempty"`
}

// Outcome is the terminal artifact of a run.
type Outcome struct {
	Results   []Result `json:"results"`
	HasIssues bool     `json:"has_issues"`
}
