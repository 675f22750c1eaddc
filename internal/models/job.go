package models

import (
	"time"

	"gorm.io/datatypes"
)

// JobPosting is a scraped job as stored by the tracker. The scoring engine
// treats it as read-only except for cached score fields owned by the analyses
// table.
type JobPosting struct {
	ID           uint                        `gorm:"primary_key;autoIncrement" json:"id"`
	JobID        string                      `gorm:"type:text;uniqueIndex;not null" json:"job_id"`
	Company      string                      `gorm:"type:text" json:"company"`
	Title        string                      `gorm:"type:text" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Requirements string                      `gorm:"type:text" json:"requirements"`
	TechStack    datatypes.JSONSlice[string] `gorm:"type:json" json:"tech_stack"`
	Location     string                      `gorm:"type:text" json:"location"`
	Remote       bool                        `json:"remote"`
	CreatedAt    time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// CandidateCV holds the parsed text of an uploaded CV. Extraction happens
// upstream; this engine only ever reads ParsedContent.
type CandidateCV struct {
	ID            uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Filename      string    `gorm:"type:text" json:"filename"`
	ParsedContent string    `gorm:"type:text" json:"parsed_content"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CandidateCV) TableName() string {
	return "candidate_cvs"
}
