package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	toolExtractSkills       = "extract_skills"
	toolCalculateSimilarity = "calculate_similarity"
	toolAnalyzeRoleLevel    = "analyze_role_level"
)

// ToolRegistry owns the three analysis tools the model may call and the
// schemas advertised for them.
type ToolRegistry struct {
	skills     *SkillExtractor
	similarity *SimilarityScorer
	roles      *RoleLevelAnalyzer
}

func NewToolRegistry(skills *SkillExtractor, similarity *SimilarityScorer, roles *RoleLevelAnalyzer) *ToolRegistry {
	return &ToolRegistry{
		skills:     skills,
		similarity: similarity,
		roles:      roles,
	}
}

// Declarations returns the tool schemas sent with every chat round.
func (r *ToolRegistry) Declarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        toolExtractSkills,
				Description: "Extract canonical skill names from free text (a job description or a CV), grouped by category, with a confidence label.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text": {
							Type:        genai.TypeString,
							Description: "The text to extract skills from.",
						},
					},
					Required: []string{"text"},
				},
			},
			{
				Name:        toolCalculateSimilarity,
				Description: "Compute semantic similarity (0-100) between two text blocks using embeddings.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text1": {
							Type:        genai.TypeString,
							Description: "First text block.",
						},
						"text2": {
							Type:        genai.TypeString,
							Description: "Second text block.",
						},
						"comparison_type": {
							Type:        genai.TypeString,
							Description: "Label for what is being compared, e.g. 'job_vs_cv' or 'requirements_vs_experience'.",
						},
					},
					Required: []string{"text1", "text2"},
				},
			},
			{
				Name:        toolAnalyzeRoleLevel,
				Description: "Infer the seniority level of the job and of the candidate, and whether the move is a step up, lateral, or step down.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"job_title": {
							Type:        genai.TypeString,
							Description: "The job title.",
						},
						"job_description": {
							Type:        genai.TypeString,
							Description: "The job description text.",
						},
						"cv_text": {
							Type:        genai.TypeString,
							Description: "The candidate's CV text.",
						},
					},
					Required: []string{"job_title", "cv_text"},
				},
			},
		},
	}}
}

// Execute dispatches one tool call by name. Tool-level failures (unknown
// name, bad arguments) come back as an error payload for the model so the
// conversation can continue; only external-service failures return a Go
// error, which aborts the whole analysis.
func (r *ToolRegistry) Execute(ctx context.Context, call *genai.FunctionCall) (map[string]any, error) {
	switch call.Name {
	case toolExtractSkills:
		text := argString(call.Args, "text")
		if text == "" {
			return toolErrorPayload("extract_skills requires a non-empty 'text' argument"), nil
		}
		return toPayload(r.skills.Extract(text))

	case toolCalculateSimilarity:
		text1 := argString(call.Args, "text1")
		text2 := argString(call.Args, "text2")
		if text1 == "" || text2 == "" {
			return toolErrorPayload("calculate_similarity requires non-empty 'text1' and 'text2' arguments"), nil
		}
		comparison := argString(call.Args, "comparison_type")
		if comparison == "" {
			comparison = "general"
		}

		assessment, err := r.similarity.Compare(ctx, text1, text2, comparison)
		if err != nil {
			var external *ExternalServiceError
			if errors.As(err, &external) {
				return nil, err
			}
			return toolErrorPayload(err.Error()), nil
		}
		return toPayload(assessment)

	case toolAnalyzeRoleLevel:
		jobTitle := argString(call.Args, "job_title")
		cvText := argString(call.Args, "cv_text")
		if jobTitle == "" || cvText == "" {
			return toolErrorPayload("analyze_role_level requires non-empty 'job_title' and 'cv_text' arguments"), nil
		}
		jobDescription := argString(call.Args, "job_description")
		return toPayload(r.roles.Analyze(jobTitle, jobDescription, cvText))

	default:
		return toolErrorPayload(fmt.Sprintf("Unknown tool: %s", call.Name)), nil
	}
}

func argString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func toolErrorPayload(message string) map[string]any {
	return map[string]any{"error": message}
}

// toPayload converts a tool result struct into the map shape the genai
// function-response part expects.
func toPayload(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return toolErrorPayload(fmt.Sprintf("failed to encode tool result: %v", err)), nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return toolErrorPayload(fmt.Sprintf("failed to encode tool result: %v", err)), nil
	}
	return payload, nil
}
