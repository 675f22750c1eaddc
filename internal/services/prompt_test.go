package services

import (
	"strings"
	"testing"

	"jobtrackr/fit-engine/internal/models"
)

func TestBuildAnalysisPromptIncludesJobAndCV(t *testing.T) {
	t.Parallel()

	pb := NewPromptBuilder()

	job := &models.JobPosting{
		JobID:        "job-9",
		Company:      "Initech",
		Title:        "Staff Platform Engineer",
		Description:  "Own the deployment platform end to end.",
		Requirements: "Kubernetes and Terraform in production.",
		TechStack:    []string{"Go", "Kubernetes", "Terraform"},
		Location:     "Berlin",
		Remote:       true,
	}
	cvText := "Platform engineer with eight years of infrastructure work."

	prompt := pb.BuildAnalysisPrompt(job, cvText)

	for _, want := range []string{
		"Initech",
		"Staff Platform Engineer",
		"Own the deployment platform end to end.",
		"Kubernetes and Terraform in production.",
		"Berlin",
		cvText,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	// Both few-shot examples ride along so the model sees a high and a low
	// verdict.
	if !strings.Contains(prompt, `"recommendation": "high"`) {
		t.Fatalf("prompt missing the strong-fit example")
	}
	if !strings.Contains(prompt, `"recommendation": "pass"`) {
		t.Fatalf("prompt missing the mismatch example")
	}
}

func TestBuildAnalysisPromptIsDeterministic(t *testing.T) {
	t.Parallel()

	pb := NewPromptBuilder()
	job := &models.JobPosting{JobID: "job-9", Title: "Engineer", Description: "Build things."}

	a := pb.BuildAnalysisPrompt(job, "cv text")
	b := pb.BuildAnalysisPrompt(job, "cv text")
	if a != b {
		t.Fatalf("prompt must be deterministic for identical inputs")
	}
}

func TestSystemInstructionNamesAllTools(t *testing.T) {
	t.Parallel()

	system := NewPromptBuilder().SystemInstruction()

	for _, tool := range []string{toolExtractSkills, toolCalculateSimilarity, toolAnalyzeRoleLevel} {
		if !strings.Contains(system, tool) {
			t.Fatalf("system instruction missing tool %q", tool)
		}
	}
	if !strings.Contains(system, "ONLY a JSON object") {
		t.Fatalf("system instruction must demand bare JSON output")
	}
}

func TestToolDeclarationsCoverRegistry(t *testing.T) {
	t.Parallel()

	registry := NewToolRegistry(NewSkillExtractor(), NewSimilarityScorer(&fakeEmbedder{}), NewRoleLevelAnalyzer())

	tools := registry.Declarations()
	if len(tools) != 1 {
		t.Fatalf("expected a single tool group, got %d", len(tools))
	}

	names := map[string]bool{}
	for _, decl := range tools[0].FunctionDeclarations {
		names[decl.Name] = true
		if decl.Parameters == nil || len(decl.Parameters.Required) == 0 {
			t.Fatalf("tool %s has no required parameters", decl.Name)
		}
	}
	for _, want := range []string{toolExtractSkills, toolCalculateSimilarity, toolAnalyzeRoleLevel} {
		if !names[want] {
			t.Fatalf("missing declaration for %s", want)
		}
	}
}
