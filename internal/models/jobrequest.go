package models

import (
	"time"

	"github.com/google/uuid"
)

type JobRequestStatus string

const (
	JobRequestOpen     JobRequestStatus = "open"
	JobRequestAssigned JobRequestStatus = "assigned"
	JobRequestClosed   JobRequestStatus = "closed"
)

// JobRequest is the reverse marketplace entry: an employee posts the work
// they are looking for and employers express interest.
type JobRequest struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployeeID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"employee_id"`
	Title       string           `gorm:"type:text;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Category    string           `gorm:"type:text" json:"category"`
	Location    string           `gorm:"type:text" json:"location"`
	Budget      string           `gorm:"type:text" json:"budget"`
	Status      JobRequestStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	AssignedTo  *uuid.UUID       `gorm:"type:uuid" json:"assigned_to,omitempty"`
	CreatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobRequest) TableName() string {
	return "job_requests"
}
