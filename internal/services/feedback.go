package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/repositories"
)

// FeedbackService records user feedback on a stored analysis. Pure mutation
// of the training log; nothing is re-scored.
type FeedbackService interface {
	RecordFeedback(analysisID string, req *models.FeedbackRequest) error
}

type feedbackService struct {
	trainingRepo repositories.TrainingRepository
	logger       *zap.Logger
}

func NewFeedbackService(trainingRepo repositories.TrainingRepository, logger *zap.Logger) FeedbackService {
	return &feedbackService{
		trainingRepo: trainingRepo,
		logger:       logger,
	}
}

// RecordFeedback implements FeedbackService. Only the fields present in req
// are applied; absent fields leave the record untouched.
func (s *feedbackService) RecordFeedback(analysisID string, req *models.FeedbackRequest) error {
	if analysisID == "" {
		return &ValidationError{Field: "analysis_id", Reason: "is required"}
	}

	id, err := uuid.Parse(analysisID)
	if err != nil {
		return &ValidationError{Field: "analysis_id", Reason: "must be a valid UUID"}
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	if req.Outcome != nil && !models.ValidOutcome(*req.Outcome) {
		return &ValidationError{
			Field:  "outcome",
			Reason: fmt.Sprintf("%q is not one of applied, rejected, interviewed, offered", *req.Outcome),
		}
	}

	update := &repositories.FeedbackUpdateData{
		Rating:       req.Rating,
		Helpful:      req.Helpful,
		Feedback:     req.Feedback,
		Outcome:      req.Outcome,
		OutcomeNotes: req.OutcomeNotes,
	}

	if err := s.trainingRepo.UpdateFeedback(id, update); err != nil {
		if errors.Is(err, repositories.ErrTrainingRecordNotFound) {
			return &NotFoundError{Entity: "analysis", ID: analysisID}
		}
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	s.logger.Info("feedback recorded", zap.String("analysis_id", analysisID))
	return nil
}
