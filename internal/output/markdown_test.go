package output

import (
	"strings"
	"testing"

	"skillgate/internal/rating"
	"skillgate/internal/scan"
)

func sampleOutcome() scan.Outcome {
	return scan.Outcome{
		Results: []scan.Result{
			{Identifier: "safe-pkg", Found: true, Rating: rating.Safe, DisplayName: "Safe Package", URL: "https://registry.example.com/skills/safe-pkg"},
			{Identifier: "risky-pkg", Found: true, Rating: rating.Unsafe, ExceedsThreshold: true, DisplayName: "Risky Package", URL: "https://registry.example.com/skills/risky-pkg"},
			{Identifier: "ghost-pkg", Found: false, Rating: rating.Unknown, Reason: "not found"},
		},
		HasIssues: true,
	}
}

func TestMarkdown_Table(t *testing.T) {
	md := Markdown(sampleOutcome(), rating.ThresholdUnsafe)

	for _, want := range []string{
		"| Package | Rating | Status |",
		"[Safe Package](https://registry.example.com/skills/safe-pkg)",
		"✅ safe",
		"✅ OK",
		"🚨 unsafe",
		"❌ Exceeds threshold",
		"❓ unknown",
		"❓ Not in database",
		"Threshold: `unsafe` · Packages scanned: 3",
		"exceed the configured risk threshold",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n---\n%s", want, md)
		}
	}
}

func TestMarkdown_NotFoundPackageIsPlainText(t *testing.T) {
	md := Markdown(sampleOutcome(), rating.ThresholdUnsafe)
	if strings.Contains(md, "[ghost-pkg]") {
		t.Fatalf("packages not in the database must not be linked:\n%s", md)
	}
	if !strings.Contains(md, "| ghost-pkg |") {
		t.Fatalf("expected plain-text ghost-pkg row:\n%s", md)
	}
}

func TestMarkdown_NoWarningWhenClean(t *testing.T) {
	outcome := scan.Outcome{
		Results: []scan.Result{
			{Identifier: "safe-pkg", Found: true, Rating: rating.Safe},
		},
	}
	md := Markdown(outcome, rating.ThresholdCaution)
	if strings.Contains(md, "exceed the configured risk threshold") {
		t.Fatalf("clean run must not carry a warning line:\n%s", md)
	}
	if !strings.Contains(md, "Threshold: `caution` · Packages scanned: 1") {
		t.Fatalf("missing footer:\n%s", md)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown(scan.Outcome{}, rating.ThresholdAny)
	if !strings.Contains(md, "No packages to scan.") {
		t.Fatalf("unexpected empty report:\n%s", md)
	}
}

func TestMarkdown_SanitizesTableCells(t *testing.T) {
	outcome := scan.Outcome{
		Results: []scan.Result{
			{Identifier: "weird|name", Found: false, Rating: rating.Unknown},
		},
	}
	md := Markdown(outcome, rating.ThresholdUnsafe)
	if !strings.Contains(md, `weird\|name`) {
		t.Fatalf("pipe not escaped in table cell:\n%s", md)
	}
}
