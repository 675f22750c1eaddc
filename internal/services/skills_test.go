package services

import (
	"reflect"
	"testing"
)

func TestExtractFindsCanonicalSkills(t *testing.T) {
	t.Parallel()

	extractor := NewSkillExtractor()

	got := extractor.Extract("Built dashboards with React and TypeScript, deployed to AWS with Docker.")

	for _, want := range []string{"AWS", "Docker", "React", "TypeScript"} {
		found := false
		for _, s := range got.Skills {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected skills to include %q, got %v", want, got.Skills)
		}
	}

	if got.Confidence != "low" {
		t.Fatalf("expected low confidence for 4 skills, got %q", got.Confidence)
	}

	frontend := got.SkillCategories[CategoryFrontend]
	foundReact := false
	for _, s := range frontend {
		if s == "React" {
			foundReact = true
		}
	}
	if !foundReact {
		t.Fatalf("expected React under %s, got %v", CategoryFrontend, frontend)
	}
}

func TestExtractSynonymsAndWordBoundaries(t *testing.T) {
	t.Parallel()

	extractor := NewSkillExtractor()

	cases := []struct {
		name    string
		text    string
		want    string
		present bool
	}{
		{"golang synonym", "Five years writing golang services.", "Go", true},
		{"k8s synonym", "Ran workloads on k8s clusters.", "Kubernetes", true},
		{"cpp token survives", "Performance critical paths in C++.", "C++", true},
		{"node dotted token", "APIs in Node.js behind nginx.", "Node.js", true},
		{"no substring match", "I enjoy wrestling and restaurants.", "REST APIs", false},
		{"r needs word boundary", "Strong grasp of React internals.", "R", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := extractor.Extract(tc.text)
			found := false
			for _, s := range got.Skills {
				if s == tc.want {
					found = true
				}
			}
			if found != tc.present {
				t.Fatalf("text %q: skill %q present=%v, want %v (skills: %v)",
					tc.text, tc.want, found, tc.present, got.Skills)
			}
		})
	}
}

func TestExtractDeduplicatesAcrossSynonyms(t *testing.T) {
	t.Parallel()

	extractor := NewSkillExtractor()

	got := extractor.Extract("react react.js reactjs everywhere")

	count := 0
	for _, s := range got.Skills {
		if s == "React" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected React exactly once, got %d in %v", count, got.Skills)
	}
}

func TestExtractConfidenceBands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{0, "low"},
		{4, "low"},
		{5, "medium"},
		{9, "medium"},
		{10, "high"},
		{25, "high"},
	}
	for _, tc := range cases {
		if got := confidenceForCount(tc.n); got != tc.want {
			t.Fatalf("confidenceForCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	extractor := NewSkillExtractor()

	got := extractor.Extract("")
	if !reflect.DeepEqual(got.Skills, []string{}) {
		t.Fatalf("expected empty non-nil skills, got %#v", got.Skills)
	}
	if got.Confidence != "low" {
		t.Fatalf("expected low confidence, got %q", got.Confidence)
	}
}
