package models

import "testing"

func TestValidOutcome(t *testing.T) {
	t.Parallel()

	for _, outcome := range []Outcome{OutcomeApplied, OutcomeRejected, OutcomeInterviewed, OutcomeOffered} {
		if !ValidOutcome(outcome) {
			t.Fatalf("expected %s to be valid", outcome)
		}
	}
	for _, outcome := range []Outcome{"", "ghosted", "Applied"} {
		if ValidOutcome(outcome) {
			t.Fatalf("expected %q to be invalid", outcome)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{"12345678", 2},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Fatalf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
