package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobtrackr/fit-engine/internal/models"
)

// ErrTrainingRecordNotFound is returned when no training record exists for
// the requested analysis.
var ErrTrainingRecordNotFound = errors.New("training record not found")

type TrainingRepository interface {
	Append(record *models.TrainingRecord) error
	// UpdateFeedback applies only the fields present in data to the record
	// linked to the given analysis. Nil fields are left untouched.
	UpdateFeedback(analysisID uuid.UUID, data *FeedbackUpdateData) error
	FindByAnalysisID(analysisID uuid.UUID) (*models.TrainingRecord, error)
}

type FeedbackUpdateData struct {
	Rating       *int
	Helpful      *bool
	Feedback     *string
	Outcome      *models.Outcome
	OutcomeNotes *string
}

type trainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) Append(record *models.TrainingRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to append training record: %w", err)
	}
	return nil
}

func (r *trainingRepository) UpdateFeedback(analysisID uuid.UUID, data *FeedbackUpdateData) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if data.Rating != nil {
		updates["rating"] = *data.Rating
	}
	if data.Helpful != nil {
		updates["helpful"] = *data.Helpful
	}
	if data.Feedback != nil {
		updates["feedback"] = *data.Feedback
	}
	if data.Outcome != nil {
		updates["outcome"] = *data.Outcome
	}
	if data.OutcomeNotes != nil {
		updates["outcome_notes"] = *data.OutcomeNotes
	}

	result := r.db.Model(&models.TrainingRecord{}).
		Where("analysis_id = ?", analysisID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update training feedback: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrTrainingRecordNotFound
	}

	return nil
}

func (r *trainingRepository) FindByAnalysisID(analysisID uuid.UUID) (*models.TrainingRecord, error) {
	var record models.TrainingRecord
	err := r.db.
		Where("analysis_id = ?", analysisID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTrainingRecordNotFound
		}
		return nil, fmt.Errorf("failed to find training record: %w", err)
	}
	return &record, nil
}
