package services

import (
	"context"
	"fmt"
	"math"
)

// Embedder produces one fixed-length vector per input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SimilarityAssessment is the structured result of the calculate_similarity
// tool.
type SimilarityAssessment struct {
	Score          int     `json:"score"`
	RawSimilarity  float64 `json:"rawSimilarity"`
	ComparisonType string  `json:"comparisonType"`
	Interpretation string  `json:"interpretation"`
}

// SimilarityScorer compares two text blocks by embedding both and computing
// cosine similarity. This is the only tool that leaves the process.
type SimilarityScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) *SimilarityScorer {
	return &SimilarityScorer{embedder: embedder}
}

// Compare embeds both texts in a single call and scores their similarity.
// comparisonType is an opaque label echoed back so the model can keep
// multiple comparisons apart.
func (s *SimilarityScorer) Compare(ctx context.Context, text1, text2, comparisonType string) (*SimilarityAssessment, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{text1, text2})
	if err != nil {
		return nil, &ExternalServiceError{Service: "embedding", Err: err}
	}
	if len(vectors) != 2 {
		return nil, &ExternalServiceError{
			Service: "embedding",
			Err:     fmt.Errorf("expected 2 vectors, got %d", len(vectors)),
		}
	}

	raw := cosineSimilarity(vectors[0], vectors[1])

	score := int(math.Round(raw * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &SimilarityAssessment{
		Score:          score,
		RawSimilarity:  raw,
		ComparisonType: comparisonType,
		Interpretation: interpretSimilarity(score),
	}, nil
}

func interpretSimilarity(score int) string {
	switch {
	case score >= 80:
		return "very high semantic overlap"
	case score >= 65:
		return "high semantic overlap"
	case score >= 50:
		return "moderate semantic overlap"
	case score >= 35:
		return "low semantic overlap"
	default:
		return "very low semantic overlap"
	}
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
