package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationRejected    ApplicationStatus = "rejected"
)

type Application struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	EmployeeID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"employee_id"`
	ResumeDocumentID uuid.UUID         `gorm:"type:uuid;not null" json:"resume_document_id"`
	CoverLetter      string            `gorm:"type:text" json:"cover_letter"`
	Status           ApplicationStatus `gorm:"type:text;not null;default:'applied'" json:"status"`
	MatchScore       *int              `gorm:"type:integer" json:"match_score,omitempty"`
	MatchExplanation *string           `gorm:"type:text" json:"match_explanation,omitempty"`
	CreatedAt        time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job            Job      `gorm:"foreignKey:JobID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
