// Package scan matches requested package identifiers against the fetched
// registry snapshot and evaluates each match against the configured
// threshold.
package scan

import (
	"strings"

	"skillgate/internal/rating"
	"skillgate/internal/registry"
)

// match reports whether a registry entry corresponds to the identifier.
// Slug and package_name alias match case-sensitively; the display name
// matches case-insensitively.
func match(skill registry.Skill, identifier string) bool {
	if skill.Slug == identifier {
		return true
	}
	if skill.Name != "" && strings.EqualFold(skill.Name, identifier) {
		return true
	}
	if skill.PackageName != "" && skill.PackageName == identifier {
		return true
	}
	return false
}

// find returns the first entry in registry order matching the identifier.
// If the registry ever returns colliding entries, listing order is the
// defined tie-break.
func find(skills []registry.Skill, identifier string) (registry.Skill, bool) {
	for _, s := range skills {
		if match(s, identifier) {
			return s, true
		}
	}
	return registry.Skill{}, false
}

// Resolve produces one Result per identifier, in identifier order, against
// an immutable registry snapshot. It is pure: resolving the same inputs
// twice yields identical results.
func Resolve(identifiers []string, skills []registry.Skill, threshold rating.Threshold) Outcome {
	outcome := Outcome{Results: make([]Result, 0, len(identifiers))}

	for _, id := range identifiers {
		res := Result{Identifier: id, Rating: rating.Unknown}

		if skill, ok := find(skills, id); ok {
			res.Found = true
			res.Rating = rating.Parse(skill.RawRating())
			res.DisplayName = skill.DisplayName()
			res.URL = skill.URL
			res.Findings = skill.Findings
		} else {
			res.Reason = "not found"
		}

		res.ExceedsThreshold = rating.Exceeds(res.Rating, threshold)
		if res.ExceedsThreshold {
			outcome.HasIssues = true
		}
		outcome.Results = append(outcome.Results, res)
	}

	return outcome
}
