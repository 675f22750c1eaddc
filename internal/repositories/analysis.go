package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobtrackr/fit-engine/internal/models"
)

type AnalysisRepository interface {
	// FindCached returns the live analysis for the key, or nil when none
	// exists. Absence is not an error.
	FindCached(jobID string, cvID, userID uint) (*models.AIAnalysis, error)
	// Upsert writes the analysis for its (job_id, cv_id, user_id) key,
	// replacing any existing row outright, and returns the row id.
	Upsert(analysis *models.AIAnalysis) (uuid.UUID, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) FindCached(jobID string, cvID, userID uint) (*models.AIAnalysis, error) {
	var analysis models.AIAnalysis
	err := r.db.
		Where("job_id = ? AND cv_id = ? AND user_id = ?", jobID, cvID, userID).
		First(&analysis).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up cached analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) Upsert(analysis *models.AIAnalysis) (uuid.UUID, error) {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	now := time.Now()
	analysis.CreatedAt = now
	analysis.UpdatedAt = now

	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}, {Name: "cv_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"overall_score",
			"overall_stars",
			"recommendation",
			"role_alignment",
			"technical_match",
			"company_fit",
			"growth_potential",
			"practical_factors",
			"strong_matches",
			"gaps",
			"red_flags",
			"application_strategy",
			"talking_points",
			"updated_at",
		}),
	}).Create(analysis)
	if tx.Error != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert analysis: %w", tx.Error)
	}

	// The conflict path keeps the original row id, so read it back to hand
	// callers the id that training records must reference.
	var stored models.AIAnalysis
	err := r.db.
		Select("id").
		Where("job_id = ? AND cv_id = ? AND user_id = ?", analysis.JobID, analysis.CVID, analysis.UserID).
		First(&stored).Error
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read back analysis id: %w", err)
	}
	analysis.ID = stored.ID

	return stored.ID, nil
}
