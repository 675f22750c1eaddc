package services

import (
	"reflect"
	"strings"
	"testing"

	"jobtrackr/fit-engine/internal/models"
)

func TestAlignEmptyJobShortCircuits(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	job := &models.JobPosting{
		JobID: "j1",
		Title: "Backend Engineer",
	}

	alignment := aligner.Align(job, "Ten years of Go, Kubernetes, PostgreSQL and everything else.")

	if alignment.Score != 0 {
		t.Fatalf("expected score 0 for empty job text, got %d", alignment.Score)
	}
	if alignment.Recommendation != models.RecommendationLow {
		t.Fatalf("expected low recommendation, got %s", alignment.Recommendation)
	}
	if !strings.Contains(alignment.Reasoning, "no usable description") {
		t.Fatalf("expected insufficient-data reasoning, got %q", alignment.Reasoning)
	}
}

func TestAlignIsDeterministic(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	job := &models.JobPosting{
		JobID:        "j2",
		Title:        "Senior Backend Engineer",
		Description:  "Go microservices, PostgreSQL, Kubernetes, distributed systems, Kafka.",
		Requirements: "Experience with AWS, Docker, gRPC and caching.",
		TechStack:    []string{"Go", "PostgreSQL", "Kafka"},
	}
	cv := "Backend engineer. Go, PostgreSQL, Kafka, Docker, AWS; built distributed systems with gRPC."

	first := aligner.Align(job, cv)
	second := aligner.Align(job, cv)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestAlignStrongMLMatch(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	job := &models.JobPosting{
		JobID:        "j3",
		Title:        "Senior Machine Learning Engineer",
		Description:  "Work on LLM fine-tuning with PyTorch and Python.",
		Requirements: "Deep learning experience required.",
	}
	cv := "5 years of PyTorch and Python. Published LLM research. Deep learning and machine learning, fine-tuning transformer models."

	alignment := aligner.Align(job, cv)

	if alignment.Score < 60 {
		t.Fatalf("expected score >= 60, got %d", alignment.Score)
	}
	if alignment.Recommendation != models.RecommendationHigh {
		t.Fatalf("expected high recommendation, got %s", alignment.Recommendation)
	}

	wantMatches := []string{"machine learning", "llm", "pytorch"}
	for _, want := range wantMatches {
		found := false
		for _, m := range alignment.StrongMatches {
			if m == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected strong matches to include %q, got %v", want, alignment.StrongMatches)
		}
	}
}

func TestAlignDomainMismatchFires(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	job := &models.JobPosting{
		JobID:        "j4",
		Title:        "Campaign Outreach Coordinator",
		Description:  "Run our political campaign outreach program.",
		Requirements: "Experience with legislative advocacy and public affairs required.",
	}
	cv := "Software engineer with Go and Kubernetes experience. Built CI/CD pipelines."

	alignment := aligner.Align(job, cv)

	if alignment.Score > 30 {
		t.Fatalf("expected mismatch score <= 30, got %d", alignment.Score)
	}
	if alignment.Recommendation != models.RecommendationLow {
		t.Fatalf("expected low recommendation, got %s", alignment.Recommendation)
	}

	foundGap := false
	for _, gap := range alignment.Gaps {
		if gap == "political/policy experience" {
			foundGap = true
		}
	}
	if !foundGap {
		t.Fatalf("expected gaps to name the missing domain, got %v", alignment.Gaps)
	}
}

func TestAlignDomainMismatchCapsKeywordOverlap(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	// Plenty of keyword overlap, but the job is fundamentally a political
	// role and the CV has no political markers.
	job := &models.JobPosting{
		JobID:        "j5",
		Title:        "Political Data Director",
		Description:  "Lead analysis for our political campaign. Python, SQL and machine learning welcome.",
		Requirements: "Legislative strategy and public affairs background required.",
	}
	cv := "Python, SQL and machine learning expert. Communication and research focused."

	alignment := aligner.Align(job, cv)

	if alignment.Score > domainMismatchCap {
		t.Fatalf("expected score capped at %d, got %d", domainMismatchCap, alignment.Score)
	}

	// Only transferable skills may survive as matches.
	for _, m := range alignment.StrongMatches {
		transferable := false
		for _, tr := range transferableSkills {
			if m == tr {
				transferable = true
				break
			}
		}
		if !transferable {
			t.Fatalf("expected only transferable matches, got %v", alignment.StrongMatches)
		}
	}
}

func TestAlignTechnicalTitleExemptFromGuard(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	// An ML engineering role for a political-news product must not be
	// treated as a political domain mismatch.
	job := &models.JobPosting{
		JobID:        "j6",
		Title:        "Machine Learning Engineer",
		Description:  "Build models that classify political and legislative news coverage.",
		Requirements: "PyTorch, Python, NLP.",
	}
	cv := "ML engineer: PyTorch, Python, NLP, machine learning in production."

	alignment := aligner.Align(job, cv)

	if alignment.Score <= domainMismatchCap {
		t.Fatalf("technical title should bypass the domain guard, got score %d", alignment.Score)
	}
	for _, gap := range alignment.Gaps {
		if strings.Contains(gap, "political") {
			t.Fatalf("unexpected domain gap for technical role: %v", alignment.Gaps)
		}
	}
}

func TestAlignListCaps(t *testing.T) {
	t.Parallel()

	aligner := NewHeuristicAligner()

	// A job that mentions a large slice of the dictionary against a CV that
	// matches all of it, then one that matches none of it.
	var sb strings.Builder
	sb.WriteString("We want: ")
	for _, kw := range orderedKeywords[:20] {
		sb.WriteString(kw)
		sb.WriteString(", ")
	}

	job := &models.JobPosting{
		JobID:       "j7",
		Title:       "Generalist",
		Description: sb.String(),
	}

	all := aligner.Align(job, sb.String())
	if len(all.StrongMatches) > maxStrongMatches {
		t.Fatalf("expected at most %d strong matches, got %d", maxStrongMatches, len(all.StrongMatches))
	}

	none := aligner.Align(job, "completely unrelated text")
	if len(none.Gaps) > maxGaps {
		t.Fatalf("expected at most %d gaps, got %d", maxGaps, len(none.Gaps))
	}
}

func TestRecommendationBands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  models.Recommendation
	}{
		{85, models.RecommendationHigh},
		{70, models.RecommendationHigh},
		{69, models.RecommendationMedium},
		{50, models.RecommendationMedium},
		{49, models.RecommendationLow},
		{0, models.RecommendationLow},
	}

	for _, tc := range cases {
		rec, reasoning := recommendationForAlignment(tc.score)
		if rec != tc.want {
			t.Fatalf("score %d: expected %s, got %s", tc.score, tc.want, rec)
		}
		if !strings.Contains(reasoning, "%") {
			t.Fatalf("expected reasoning to embed the score, got %q", reasoning)
		}
	}
}
