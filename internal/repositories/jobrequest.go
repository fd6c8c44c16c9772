package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anvaya/anvaya-api/internal/models"
)

type JobRequestRepository interface {
	Create(request *models.JobRequest) error
	FindByID(id uuid.UUID) (*models.JobRequest, error)
	FindOpen(limit int) ([]models.JobRequest, error)
	FindByEmployee(employeeID uuid.UUID) ([]models.JobRequest, error)
	Update(request *models.JobRequest) error
	Delete(id uuid.UUID) error
}

type jobRequestRepository struct {
	db *gorm.DB
}

func NewJobRequestRepository(db *gorm.DB) JobRequestRepository {
	return &jobRequestRepository{db: db}
}

func (r *jobRequestRepository) Create(request *models.JobRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create job request: %w", err)
	}
	return nil
}

func (r *jobRequestRepository) FindByID(id uuid.UUID) (*models.JobRequest, error) {
	var request models.JobRequest
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job request: %w", err)
	}
	return &request, nil
}

func (r *jobRequestRepository) FindOpen(limit int) ([]models.JobRequest, error) {
	var requests []models.JobRequest
	err := r.db.
		Where("status = ?", models.JobRequestOpen).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list open job requests: %w", err)
	}

	return requests, nil
}

func (r *jobRequestRepository) FindByEmployee(employeeID uuid.UUID) ([]models.JobRequest, error) {
	var requests []models.JobRequest
	err := r.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list job requests: %w", err)
	}

	return requests, nil
}

func (r *jobRequestRepository) Update(request *models.JobRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return fmt.Errorf("failed to update job request: %w", err)
	}
	return nil
}

func (r *jobRequestRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.JobRequest{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
