package models

import "time"

// FaceEnrollment records which encoder produced the reference embedding kept
// in the vector store for an owner. The vector itself lives in Qdrant; this
// row exists so verification can refuse to compare embeddings across encoder
// boundaries.
type FaceEnrollment struct {
	OwnerID      string    `gorm:"type:text;primary_key" json:"owner_id"`
	ModelTag     string    `gorm:"type:text;not null" json:"model_tag"`
	EmbeddingDim int       `gorm:"type:integer;not null" json:"embedding_dim"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FaceEnrollment) TableName() string {
	return "face_enrollments"
}
