package models

type AnalyzeRequest struct {
	JobID  string `json:"job_id" validate:"required"`
	CVID   uint   `json:"cv_id" validate:"required"`
	UserID uint   `json:"user_id" validate:"required"`
}

type AnalyzeResponse struct {
	JobID  string          `json:"job_id"`
	CVID   uint            `json:"cv_id"`
	UserID uint            `json:"user_id"`
	Result *AnalysisResult `json:"result"`
}

type FeedbackRequest struct {
	Rating       *int     `json:"rating,omitempty"`
	Helpful      *bool    `json:"helpful,omitempty"`
	Feedback     *string  `json:"feedback,omitempty"`
	Outcome      *Outcome `json:"outcome,omitempty"`
	OutcomeNotes *string  `json:"outcome_notes,omitempty"`
}

type MatchRequest struct {
	JobID  string `json:"job_id" validate:"required"`
	CVText string `json:"cv_text"`
	CVID   uint   `json:"cv_id"`
}

type MatchResponse struct {
	JobID     string              `json:"job_id"`
	Alignment *HeuristicAlignment `json:"alignment"`
}

type BatchMatchRequest struct {
	JobIDs []string `json:"job_ids" validate:"required"`
	CVText string   `json:"cv_text"`
	CVID   uint     `json:"cv_id"`
}

type BatchMatchResponse struct {
	Results  []MatchResponse `json:"results"`
	Total    int             `json:"total"`
	Failures int             `json:"failures"`
}
