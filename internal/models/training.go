package models

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeApplied     Outcome = "applied"
	OutcomeRejected    Outcome = "rejected"
	OutcomeInterviewed Outcome = "interviewed"
	OutcomeOffered     Outcome = "offered"
)

// ValidOutcome reports whether tag is one of the known outcome labels.
func ValidOutcome(tag Outcome) bool {
	switch tag {
	case OutcomeApplied, OutcomeRejected, OutcomeInterviewed, OutcomeOffered:
		return true
	}
	return false
}

// TrainingRecord is an append-only log of one analysis run, kept for future
// fine-tuning. Only the feedback fields are ever mutated after insert.
type TrainingRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AnalysisID        uuid.UUID `gorm:"type:uuid;index;not null" json:"analysis_id"`
	JobID             string    `gorm:"type:text" json:"job_id"`
	CVID              uint      `json:"cv_id"`
	UserID            uint      `json:"user_id"`
	Prompt            string    `gorm:"type:text" json:"prompt"`
	RawResponse       string    `gorm:"type:text" json:"raw_response"`
	ParseSuccess      bool      `json:"parse_success"`
	ToolRounds        int       `json:"tool_rounds"`
	ElapsedMS         int64     `json:"elapsed_ms"`
	PromptTokensEst   int       `json:"prompt_tokens_est"`
	ResponseTokensEst int       `json:"response_tokens_est"`
	ModelName         string    `gorm:"type:text" json:"model_name"`

	// User feedback, filled in later via RecordFeedback.
	Rating       *int      `json:"rating,omitempty"`
	Helpful      *bool     `json:"helpful,omitempty"`
	Feedback     *string   `gorm:"type:text" json:"feedback,omitempty"`
	Outcome      *Outcome  `gorm:"type:text" json:"outcome,omitempty"`
	OutcomeNotes *string   `gorm:"type:text" json:"outcome_notes,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TrainingRecord) TableName() string {
	return "training_records"
}

// EstimateTokens approximates a token count as length/4. Good enough for
// training-data bookkeeping; not a tokenizer.
func EstimateTokens(text string) int {
	return len(text) / 4
}
