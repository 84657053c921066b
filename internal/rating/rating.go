package rating

import (
	"fmt"
	"strings"
)

// Rating is the trust registry's verdict on a package.
//
// Unknown is an absence marker, not a risk level: it means the registry has
// no data for the package (or the entry carried an unrecognized rating
// value). It never participates in the safe < caution < unsafe ordering.
type Rating string

const (
	Safe    Rating = "safe"
	Caution Rating = "caution"
	Unsafe  Rating = "unsafe"
	Unknown Rating = "unknown"
)

// Rank returns an integer rank for threshold comparison (Safe=0, Unsafe=2).
// Unknown has no rank and returns -1.
func (r Rating) Rank() int {
	switch r {
	case Safe:
		return 0
	case Caution:
		return 1
	case Unsafe:
		return 2
	default:
		return -1
	}
}

func (r Rating) String() string {
	return string(r)
}

// Emoji returns the fixed report marker for the rating.
func (r Rating) Emoji() string {
	switch r {
	case Safe:
		return "✅"
	case Caution:
		return "⚠️"
	case Unsafe:
		return "🚨"
	default:
		return "❓"
	}
}

// Parse maps a raw rating value (case-insensitive) to a Rating. Anything
// outside the known enumeration maps to Unknown; registry field renames and
// novel values must not abort a run.
func Parse(raw string) Rating {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "safe":
		return Safe
	case "caution":
		return Caution
	case "unsafe":
		return Unsafe
	default:
		return Unknown
	}
}

// Threshold is the configured sensitivity controlling which ratings fail
// the build (see --fail-on).
type Threshold string

const (
	// ThresholdUnsafe fails only on unsafe packages.
	ThresholdUnsafe Threshold = "unsafe"
	// ThresholdCaution fails on caution or worse.
	ThresholdCaution Threshold = "caution"
	// ThresholdAny fails on anything not explicitly rated safe,
	// including packages the registry does not know.
	ThresholdAny Threshold = "any"
)

// ParseThreshold validates a --fail-on value. Unrecognized modes are a
// configuration error, never a silent default.
func ParseThreshold(raw string) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "unsafe":
		return ThresholdUnsafe, nil
	case "caution":
		return ThresholdCaution, nil
	case "any":
		return ThresholdAny, nil
	default:
		return "", fmt.Errorf("unsupported --fail-on: %s (must be one of: unsafe, caution, any)", raw)
	}
}

// Exceeds reports whether a rating trips the threshold.
//
// Unknown exceeds only under ThresholdAny: with no data there is nothing to
// compare numerically, so caution/unsafe modes let unknown packages pass.
func Exceeds(r Rating, t Threshold) bool {
	switch t {
	case ThresholdAny:
		return r != Safe
	case ThresholdCaution:
		return r == Caution || r == Unsafe
	case ThresholdUnsafe:
		return r == Unsafe
	default:
		return false
	}
}
