package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// ErrorKind classifies a failed evaluation so the API can surface the
// rate-limit and parse cases distinctly from generic connectivity issues.
type ErrorKind string

const (
	ErrorKindRateLimited  ErrorKind = "rate_limited"
	ErrorKindParseFailure ErrorKind = "parse_failure"
	ErrorKindConnectivity ErrorKind = "connectivity"
	ErrorKindExtraction   ErrorKind = "extraction"
)

type Evaluation struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID        `gorm:"type:uuid;not null" json:"job_id"`
	ResumeDocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"resume_document_id"`
	ApplicationID    *uuid.UUID       `gorm:"type:uuid" json:"application_id,omitempty"`
	Status           EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`
	MatchScore       *int             `gorm:"type:integer" json:"match_score,omitempty"`
	Explanation      *string          `gorm:"type:text" json:"explanation,omitempty"`
	ErrorKind        *string          `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage     *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job            Job      `gorm:"foreignKey:JobID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
