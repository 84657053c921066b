package rating

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Rating
	}{
		{"safe", Safe},
		{"SAFE", Safe},
		{" Caution ", Caution},
		{"unsafe", Unsafe},
		{"unknown", Unknown},
		{"", Unknown},
		{"experimental", Unknown},
	}

	for _, tt := range tests {
		if got := Parse(tt.raw); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	if Safe.Rank() != 0 || Caution.Rank() != 1 || Unsafe.Rank() != 2 {
		t.Fatalf("unexpected ranks: safe=%d caution=%d unsafe=%d", Safe.Rank(), Caution.Rank(), Unsafe.Rank())
	}
	if Unknown.Rank() != -1 {
		t.Fatalf("Unknown.Rank() = %d, want -1", Unknown.Rank())
	}
}

func TestParseThreshold(t *testing.T) {
	for _, raw := range []string{"unsafe", "caution", "any", " ANY "} {
		if _, err := ParseThreshold(raw); err != nil {
			t.Errorf("ParseThreshold(%q) returned error: %v", raw, err)
		}
	}
	if _, err := ParseThreshold("strict"); err == nil {
		t.Fatalf("expected error for unrecognized threshold mode, got nil")
	}
	if _, err := ParseThreshold(""); err == nil {
		t.Fatalf("expected error for empty threshold mode, got nil")
	}
}

func TestExceeds(t *testing.T) {
	tests := []struct {
		rating    Rating
		threshold Threshold
		want      bool
	}{
		{Safe, ThresholdUnsafe, false},
		{Safe, ThresholdCaution, false},
		{Safe, ThresholdAny, false},

		{Caution, ThresholdUnsafe, false},
		{Caution, ThresholdCaution, true},
		{Caution, ThresholdAny, true},

		{Unsafe, ThresholdUnsafe, true},
		{Unsafe, ThresholdCaution, true},
		{Unsafe, ThresholdAny, true},

		// Unknown is absence of data: only "any" treats it as an issue.
		{Unknown, ThresholdUnsafe, false},
		{Unknown, ThresholdCaution, false},
		{Unknown, ThresholdAny, true},
	}

	for _, tt := range tests {
		if got := Exceeds(tt.rating, tt.threshold); got != tt.want {
			t.Errorf("Exceeds(%s, %s) = %v, want %v", tt.rating, tt.threshold, got, tt.want)
		}
	}
}
