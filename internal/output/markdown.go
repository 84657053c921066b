package output

import (
	"fmt"
	"strings"

	"skillgate/internal/rating"
	"skillgate/internal/scan"
)

// Markdown renders the run report as a markdown table, one row per package
// in collection order, followed by a footer naming the active threshold and
// package count and, when anything exceeded, a warning line.
func Markdown(outcome scan.Outcome, threshold rating.Threshold) string {
	var b strings.Builder
	b.WriteString("## Package Trust Check\n\n")

	if len(outcome.Results) == 0 {
		b.WriteString("No packages to scan.\n")
		return b.String()
	}

	b.WriteString("| Package | Rating | Status |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, r := range outcome.Results {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", packageCell(r), ratingCell(r), statusCell(r)))
	}

	b.WriteString(fmt.Sprintf("\nThreshold: `%s` · Packages scanned: %d\n", threshold, len(outcome.Results)))
	if outcome.HasIssues {
		b.WriteString("\n⚠️ **One or more packages exceed the configured risk threshold.**\n")
	}
	return b.String()
}

func packageCell(r scan.Result) string {
	name := r.Identifier
	if r.Found && r.DisplayName != "" {
		name = r.DisplayName
	}
	name = sanitizeCell(name)
	if r.Found && r.URL != "" {
		return fmt.Sprintf("[%s](%s)", name, r.URL)
	}
	return name
}

func ratingCell(r scan.Result) string {
	return fmt.Sprintf("%s %s", r.Rating.Emoji(), r.Rating)
}

func statusCell(r scan.Result) string {
	switch {
	case r.ExceedsThreshold:
		return "❌ Exceeds threshold"
	case !r.Found:
		return "❓ Not in database"
	default:
		return "✅ OK"
	}
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
