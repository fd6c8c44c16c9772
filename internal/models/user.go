package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleEmployer UserRole = "employer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Email         string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"type:text;not null" json:"-"`
	Role          UserRole  `gorm:"type:text;not null;default:'employee'" json:"role"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// EmailOTP holds a pending one-time verification code for an email address.
// A new code replaces any previous one for the same email.
type EmailOTP struct {
	Email     string    `gorm:"type:text;primary_key" json:"email"`
	Code      string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (EmailOTP) TableName() string {
	return "email_otps"
}
