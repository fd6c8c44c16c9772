package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"anvaya/anvaya-api/internal/models"
)

type FaceEnrollmentRepository interface {
	Upsert(enrollment *models.FaceEnrollment) error
	FindByOwner(ownerID string) (*models.FaceEnrollment, error)
	Delete(ownerID string) error
}

type faceEnrollmentRepository struct {
	db *gorm.DB
}

func NewFaceEnrollmentRepository(db *gorm.DB) FaceEnrollmentRepository {
	return &faceEnrollmentRepository{db: db}
}

// Upsert implements FaceEnrollmentRepository. Re-registration overwrites the
// previous enrollment; there is no versioning.
func (r *faceEnrollmentRepository) Upsert(enrollment *models.FaceEnrollment) error {
	if err := r.db.Save(enrollment).Error; err != nil {
		return fmt.Errorf("failed to save face enrollment: %w", err)
	}
	return nil
}

// FindByOwner implements FaceEnrollmentRepository.
func (r *faceEnrollmentRepository) FindByOwner(ownerID string) (*models.FaceEnrollment, error) {
	var enrollment models.FaceEnrollment
	if err := r.db.Where("owner_id = ?", ownerID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find face enrollment: %w", err)
	}
	return &enrollment, nil
}

// Delete implements FaceEnrollmentRepository.
func (r *faceEnrollmentRepository) Delete(ownerID string) error {
	if err := r.db.Where("owner_id = ?", ownerID).Delete(&models.FaceEnrollment{}).Error; err != nil {
		return fmt.Errorf("failed to delete face enrollment: %w", err)
	}
	return nil
}
