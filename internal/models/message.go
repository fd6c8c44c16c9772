package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one direct message between an employee and an employer,
// optionally tied to an application.
type Message struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SenderID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"application_id,omitempty"`
	Body          string     `gorm:"type:text;not null" json:"body"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
