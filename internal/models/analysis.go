package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recommendation string

const (
	RecommendationHigh   Recommendation = "high"
	RecommendationMedium Recommendation = "medium"
	RecommendationLow    Recommendation = "low"
	RecommendationPass   Recommendation = "pass"
)

// Category weights for the overall score. These must sum to 1.0 and mirror
// the rubric given to the model in the analysis prompt.
const (
	WeightRoleAlignment    = 0.30
	WeightTechnicalMatch   = 0.25
	WeightCompanyFit       = 0.20
	WeightGrowthPotential  = 0.15
	WeightPracticalFactors = 0.10
)

// CategoryScore is one of the five scored dimensions of an analysis.
type CategoryScore struct {
	Score     int    `json:"score"`
	Stars     int    `json:"stars"`
	Reasoning string `json:"reasoning"`
}

// AnalysisResult is the structured output of one AI analysis. It is both the
// JSON shape the model must produce and the value returned to callers.
type AnalysisResult struct {
	OverallScore        int            `json:"overall_score"`
	OverallStars        int            `json:"overall_stars"`
	Recommendation      Recommendation `json:"recommendation"`
	RoleAlignment       CategoryScore  `json:"role_alignment"`
	TechnicalMatch      CategoryScore  `json:"technical_match"`
	CompanyFit          CategoryScore  `json:"company_fit"`
	GrowthPotential     CategoryScore  `json:"growth_potential"`
	PracticalFactors    CategoryScore  `json:"practical_factors"`
	StrongMatches       []string       `json:"strong_matches"`
	Gaps                []string       `json:"gaps"`
	RedFlags            []string       `json:"red_flags"`
	ApplicationStrategy string         `json:"application_strategy"`
	TalkingPoints       []string       `json:"talking_points"`
}

// StarsForScore maps a 0-100 score onto the 1-5 star bands.
func StarsForScore(score int) int {
	switch {
	case score >= 90:
		return 5
	case score >= 75:
		return 4
	case score >= 60:
		return 3
	case score >= 40:
		return 2
	default:
		return 1
	}
}

// RecommendationForScore maps an overall score onto the recommendation bands.
func RecommendationForScore(score int) Recommendation {
	switch {
	case score >= 75:
		return RecommendationHigh
	case score >= 50:
		return RecommendationMedium
	case score >= 40:
		return RecommendationLow
	default:
		return RecommendationPass
	}
}

// Normalize recomputes every derived field from the five category scores so
// the stored row always satisfies the weighting and band invariants, whatever
// arithmetic the model did.
func (r *AnalysisResult) Normalize() {
	clamp := func(s *CategoryScore) {
		if s.Score < 0 {
			s.Score = 0
		}
		if s.Score > 100 {
			s.Score = 100
		}
		s.Stars = StarsForScore(s.Score)
	}
	clamp(&r.RoleAlignment)
	clamp(&r.TechnicalMatch)
	clamp(&r.CompanyFit)
	clamp(&r.GrowthPotential)
	clamp(&r.PracticalFactors)

	weighted := WeightRoleAlignment*float64(r.RoleAlignment.Score) +
		WeightTechnicalMatch*float64(r.TechnicalMatch.Score) +
		WeightCompanyFit*float64(r.CompanyFit.Score) +
		WeightGrowthPotential*float64(r.GrowthPotential.Score) +
		WeightPracticalFactors*float64(r.PracticalFactors.Score)

	r.OverallScore = int(math.Round(weighted))
	r.OverallStars = StarsForScore(r.OverallScore)
	r.Recommendation = RecommendationForScore(r.OverallScore)

	if r.StrongMatches == nil {
		r.StrongMatches = []string{}
	}
	if r.Gaps == nil {
		r.Gaps = []string{}
	}
	if r.RedFlags == nil {
		r.RedFlags = []string{}
	}
	if r.TalkingPoints == nil {
		r.TalkingPoints = []string{}
	}
}

// AIAnalysis is the persisted form of an AnalysisResult, keyed by
// (job_id, cv_id, user_id). At most one live row exists per key; a newer
// analysis replaces the old one.
type AIAnalysis struct {
	ID                  uuid.UUID                             `gorm:"type:uuid;primary_key" json:"id"`
	JobID               string                                `gorm:"type:text;not null;uniqueIndex:idx_analysis_key" json:"job_id"`
	CVID                uint                                  `gorm:"not null;uniqueIndex:idx_analysis_key" json:"cv_id"`
	UserID              uint                                  `gorm:"not null;uniqueIndex:idx_analysis_key" json:"user_id"`
	OverallScore        int                                   `json:"overall_score"`
	OverallStars        int                                   `json:"overall_stars"`
	Recommendation      Recommendation                        `gorm:"type:text" json:"recommendation"`
	RoleAlignment       datatypes.JSONType[CategoryScore]     `gorm:"type:json" json:"role_alignment"`
	TechnicalMatch      datatypes.JSONType[CategoryScore]     `gorm:"type:json" json:"technical_match"`
	CompanyFit          datatypes.JSONType[CategoryScore]     `gorm:"type:json" json:"company_fit"`
	GrowthPotential     datatypes.JSONType[CategoryScore]     `gorm:"type:json" json:"growth_potential"`
	PracticalFactors    datatypes.JSONType[CategoryScore]     `gorm:"type:json" json:"practical_factors"`
	StrongMatches       datatypes.JSONSlice[string]           `gorm:"type:json" json:"strong_matches"`
	Gaps                datatypes.JSONSlice[string]           `gorm:"type:json" json:"gaps"`
	RedFlags            datatypes.JSONSlice[string]           `gorm:"type:json" json:"red_flags"`
	ApplicationStrategy string                                `gorm:"type:text" json:"application_strategy"`
	TalkingPoints       datatypes.JSONSlice[string]           `gorm:"type:json" json:"talking_points"`
	CreatedAt           time.Time                             `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time                             `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AIAnalysis) TableName() string {
	return "ai_analyses"
}

// NewAIAnalysis builds a persistable row from a result and its key.
func NewAIAnalysis(jobID string, cvID, userID uint, result *AnalysisResult) *AIAnalysis {
	return &AIAnalysis{
		ID:                  uuid.New(),
		JobID:               jobID,
		CVID:                cvID,
		UserID:              userID,
		OverallScore:        result.OverallScore,
		OverallStars:        result.OverallStars,
		Recommendation:      result.Recommendation,
		RoleAlignment:       datatypes.NewJSONType(result.RoleAlignment),
		TechnicalMatch:      datatypes.NewJSONType(result.TechnicalMatch),
		CompanyFit:          datatypes.NewJSONType(result.CompanyFit),
		GrowthPotential:     datatypes.NewJSONType(result.GrowthPotential),
		PracticalFactors:    datatypes.NewJSONType(result.PracticalFactors),
		StrongMatches:       datatypes.NewJSONSlice(result.StrongMatches),
		Gaps:                datatypes.NewJSONSlice(result.Gaps),
		RedFlags:            datatypes.NewJSONSlice(result.RedFlags),
		ApplicationStrategy: result.ApplicationStrategy,
		TalkingPoints:       datatypes.NewJSONSlice(result.TalkingPoints),
	}
}

// Result reconstructs the AnalysisResult exactly as it was stored.
func (a *AIAnalysis) Result() *AnalysisResult {
	return &AnalysisResult{
		OverallScore:        a.OverallScore,
		OverallStars:        a.OverallStars,
		Recommendation:      a.Recommendation,
		RoleAlignment:       a.RoleAlignment.Data(),
		TechnicalMatch:      a.TechnicalMatch.Data(),
		CompanyFit:          a.CompanyFit.Data(),
		GrowthPotential:     a.GrowthPotential.Data(),
		PracticalFactors:    a.PracticalFactors.Data(),
		StrongMatches:       []string(a.StrongMatches),
		Gaps:                []string(a.Gaps),
		RedFlags:            []string(a.RedFlags),
		ApplicationStrategy: a.ApplicationStrategy,
		TalkingPoints:       []string(a.TalkingPoints),
	}
}

// HeuristicAlignment is the output of the deterministic keyword scorer. It is
// recomputed on demand and never cached.
type HeuristicAlignment struct {
	Score          int            `json:"score"`
	StrongMatches  []string       `json:"strong_matches"`
	Gaps           []string       `json:"gaps"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}
