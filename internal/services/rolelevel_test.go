package services

import "testing"

func TestAnalyzeRoleLevelProgressions(t *testing.T) {
	t.Parallel()

	analyzer := NewRoleLevelAnalyzer()

	cases := []struct {
		name           string
		jobTitle       string
		jobDescription string
		cvText         string
		jobLevel       string
		candidateLevel string
		progression    string
		growthScore    int
	}{
		{
			name:           "promotion shaped step up",
			jobTitle:       "Senior Backend Engineer",
			cvText:         "Mid-level engineer shipping Go services for four years.",
			jobLevel:       LevelSenior,
			candidateLevel: LevelMid,
			progression:    ProgressionStepUp,
			growthScore:    85,
		},
		{
			name:           "clear step down",
			jobTitle:       "Junior Web Developer",
			cvText:         "Principal engineer, 14 years across infrastructure and platform teams.",
			jobLevel:       LevelJunior,
			candidateLevel: LevelPrincipal,
			progression:    ProgressionStepDown,
			growthScore:    25,
		},
		{
			name:           "lateral senior to senior",
			jobTitle:       "Senior Platform Engineer",
			cvText:         "Senior engineer focused on reliability.",
			jobLevel:       LevelSenior,
			candidateLevel: LevelSenior,
			progression:    ProgressionLateral,
			growthScore:    60,
		},
		{
			name:           "two level stretch",
			jobTitle:       "Staff Engineer",
			cvText:         "Mid-level developer, comfortable across the stack.",
			jobLevel:       LevelStaff,
			candidateLevel: LevelMid,
			progression:    ProgressionStepUp,
			growthScore:    70,
		},
		{
			name:           "years fallback on both sides",
			jobTitle:       "Backend Engineer",
			jobDescription: "We expect 6+ years of production experience.",
			cvText:         "3 years building REST services in Python.",
			jobLevel:       LevelSenior,
			candidateLevel: LevelMid,
			progression:    ProgressionStepUp,
			growthScore:    85,
		},
		{
			name:           "defaults to mid when nothing matches",
			jobTitle:       "Backend Engineer",
			cvText:         "I build things.",
			jobLevel:       LevelMid,
			candidateLevel: LevelMid,
			progression:    ProgressionLateral,
			growthScore:    60,
		},
		{
			name:           "staff beats senior in combined title",
			jobTitle:       "Senior Staff Engineer",
			cvText:         "Senior engineer.",
			jobLevel:       LevelStaff,
			candidateLevel: LevelSenior,
			progression:    ProgressionStepUp,
			growthScore:    85,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := analyzer.Analyze(tc.jobTitle, tc.jobDescription, tc.cvText)

			if got.JobLevel != tc.jobLevel {
				t.Fatalf("job level = %s, want %s", got.JobLevel, tc.jobLevel)
			}
			if got.CandidateLevel != tc.candidateLevel {
				t.Fatalf("candidate level = %s, want %s", got.CandidateLevel, tc.candidateLevel)
			}
			if got.Progression != tc.progression {
				t.Fatalf("progression = %s, want %s", got.Progression, tc.progression)
			}
			if got.GrowthScore != tc.growthScore {
				t.Fatalf("growth score = %d, want %d", got.GrowthScore, tc.growthScore)
			}
			if got.Reasoning == "" || got.Recommendation == "" {
				t.Fatalf("expected non-empty reasoning and recommendation: %+v", got)
			}
		})
	}
}

func TestLevelFromYears(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"1 year of experience", LevelJunior},
		{"3 years in backend work", LevelMid},
		{"5+ years shipping services", LevelSenior},
		{"over 10 yrs in the field", LevelStaff},
	}
	for _, tc := range cases {
		got := levelFromYears(tc.text)
		if got == nil {
			t.Fatalf("levelFromYears(%q) = nil, want %s", tc.text, tc.want)
		}
		if got.name != tc.want {
			t.Fatalf("levelFromYears(%q) = %s, want %s", tc.text, got.name, tc.want)
		}
	}

	if got := levelFromYears("no experience hints at all"); got != nil {
		t.Fatalf("expected nil for text without year counts, got %s", got.name)
	}
}
