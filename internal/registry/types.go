package registry

import (
	"encoding/json"
	"fmt"
)

// Skill is one entry from the trust registry.
//
// The registry's schema has drifted over time, so the rating may arrive
// under any of three field names; Rating() resolves the precedence.
// Findings are opaque issue descriptors and are carried through verbatim.
type Skill struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	PackageName string   `json:"package_name,omitempty"`
	Safety      string   `json:"safety_rating,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	RiskLevel   string   `json:"risk_level,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Findings    []string `json:"findings,omitempty"`
}

// RawRating returns the entry's rating value under the field-name
// precedence safety_rating > rating > risk_level, falling back to
// "unknown" when none is present.
func (s Skill) RawRating() string {
	switch {
	case s.Safety != "":
		return s.Safety
	case s.Rating != "":
		return s.Rating
	case s.RiskLevel != "":
		return s.RiskLevel
	default:
		return "unknown"
	}
}

// DisplayName returns the entry's human-facing name, falling back to the
// slug when the registry omits one.
func (s Skill) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Slug
}

// Error is a fatal registry failure: a non-200 response or an unparseable
// body. StatusCode is 0 when the failure happened before a final status
// was received.
type Error struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry: %v", e.Err)
	}
	return fmt.Sprintf("registry: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// normalizeEnvelope extracts the skill list from any of the response
// shapes the endpoint is known to produce: a bare array, or an object
// with the list under "skills" or "data". Anything else normalizes to an
// empty list rather than an error; schema tolerance is deliberate.
func normalizeEnvelope(raw []byte) ([]Skill, error) {
	var direct []Skill
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var envelope struct {
		Skills []Skill `json:"skills"`
		Data   []Skill `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &Error{Err: fmt.Errorf("parse response: %w", err)}
	}
	if envelope.Skills != nil {
		return envelope.Skills, nil
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	return []Skill{}, nil
}
