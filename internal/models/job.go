package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type Job struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployerID     uuid.UUID `gorm:"type:uuid;not null" json:"employer_id"`
	Title          string    `gorm:"type:text;not null" json:"title"`
	Category       string    `gorm:"type:text" json:"category"`
	Description    string    `gorm:"type:text" json:"description"`
	Requirements   string    `gorm:"type:text" json:"requirements"`
	SkillsRequired string    `gorm:"type:text" json:"skills_required"`
	Location       string    `gorm:"type:text" json:"location"`
	SalaryRange    string    `gorm:"type:text" json:"salary_range"`
	Status         JobStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
