// Package collect assembles the working set of package identifiers for a
// run: explicit --packages entries first, then auto-detected names, with
// case-sensitive set semantics.
package collect

import "strings"

// SplitPackages parses the comma-separated --packages value. Entries are
// trimmed of surrounding whitespace; empties are dropped.
func SplitPackages(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Identifiers merges explicit identifiers with auto-detected ones,
// preserving first-seen order. Explicit entries take ordering priority;
// duplicates across the two sources appear exactly once.
func Identifiers(explicit, detected []string) []string {
	seen := make(map[string]struct{}, len(explicit)+len(detected))
	var out []string
	for _, lists := range [][]string{explicit, detected} {
		for _, id := range lists {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
