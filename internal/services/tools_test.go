package services

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func testRegistry(embedder Embedder) *ToolRegistry {
	return NewToolRegistry(NewSkillExtractor(), NewSimilarityScorer(embedder), NewRoleLevelAnalyzer())
}

func TestExecuteExtractSkills(t *testing.T) {
	t.Parallel()

	registry := testRegistry(&fakeEmbedder{})

	payload, err := registry.Execute(context.Background(), &genai.FunctionCall{
		Name: toolExtractSkills,
		Args: map[string]any{"text": "Go, PostgreSQL and Docker in production."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skills, ok := payload["skills"].([]any)
	if !ok || len(skills) == 0 {
		t.Fatalf("expected a non-empty skills list, got %+v", payload)
	}
	if _, ok := payload["confidence"].(string); !ok {
		t.Fatalf("expected a confidence label, got %+v", payload)
	}
}

func TestExecuteRoleLevel(t *testing.T) {
	t.Parallel()

	registry := testRegistry(&fakeEmbedder{})

	payload, err := registry.Execute(context.Background(), &genai.FunctionCall{
		Name: toolAnalyzeRoleLevel,
		Args: map[string]any{
			"job_title": "Senior Engineer",
			"cv_text":   "Mid-level engineer, 4 years.",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["progression"] != "step_up" {
		t.Fatalf("expected step_up, got %+v", payload["progression"])
	}
}

func TestExecuteSimilarityFatalOnEmbedderError(t *testing.T) {
	t.Parallel()

	registry := testRegistry(&fakeEmbedder{err: errors.New("embedding backend down")})

	_, err := registry.Execute(context.Background(), &genai.FunctionCall{
		Name: toolCalculateSimilarity,
		Args: map[string]any{"text1": "a", "text2": "b"},
	})

	var external *ExternalServiceError
	if !errors.As(err, &external) {
		t.Fatalf("embedding failures must abort the analysis, got %v", err)
	}
}

func TestExecuteArgumentErrorsAreRecoverable(t *testing.T) {
	t.Parallel()

	registry := testRegistry(&fakeEmbedder{})

	cases := []struct {
		name string
		call *genai.FunctionCall
	}{
		{"missing text", &genai.FunctionCall{Name: toolExtractSkills, Args: map[string]any{}}},
		{"nil args", &genai.FunctionCall{Name: toolCalculateSimilarity}},
		{"missing cv", &genai.FunctionCall{Name: toolAnalyzeRoleLevel, Args: map[string]any{"job_title": "x"}}},
		{"unknown tool", &genai.FunctionCall{Name: "summon_recruiter", Args: map[string]any{}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload, err := registry.Execute(context.Background(), tc.call)
			if err != nil {
				t.Fatalf("argument errors must come back as payloads, got %v", err)
			}
			if _, ok := payload["error"].(string); !ok {
				t.Fatalf("expected an error payload, got %+v", payload)
			}
		})
	}
}
