package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
	"anvaya/anvaya-api/internal/services"
)

type ApplicationHandler struct {
	appRepo   repositories.ApplicationRepository
	jobRepo   repositories.JobRepository
	docRepo   repositories.DocumentRepository
	evalRepo  repositories.EvaluationRepository
	notifRepo repositories.NotificationRepository
	worker    services.Worker
	logger    *zap.Logger
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	evalRepo repositories.EvaluationRepository,
	notifRepo repositories.NotificationRepository,
	worker services.Worker,
	logger *zap.Logger,
) *ApplicationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ApplicationHandler{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		docRepo:   docRepo,
		evalRepo:  evalRepo,
		notifRepo: notifRepo,
		worker:    worker,
		logger:    logger,
	}
}

// HandleApply handles POST /jobs/:id/apply. Creating an application also
// queues a resume-to-job evaluation for it.
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var req models.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employee_id format",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	if _, err := h.docRepo.FindByID(resumeDocID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	app := &models.Application{
		ID:               uuid.New(),
		JobID:            jobID,
		EmployeeID:       employeeID,
		ResumeDocumentID: resumeDocID,
		CoverLetter:      req.CoverLetter,
		Status:           models.ApplicationApplied,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.appRepo.Create(app); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	evaluation := &models.Evaluation{
		ID:               uuid.New(),
		JobID:            jobID,
		ResumeDocumentID: resumeDocID,
		ApplicationID:    &app.ID,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := h.evalRepo.Create(evaluation); err != nil {
		// The application stands; the poller or a manual /evaluate call
		// can still score it later.
		h.logger.Warn("failed to queue evaluation for application",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	} else {
		h.worker.EnqueueJob(evaluation.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"application":   app,
		"evaluation_id": evaluation.ID.String(),
	})
}

// HandleListApplications handles GET /applications?employee_id= / ?job_id=
func (h *ApplicationHandler) HandleListApplications(c *fiber.Ctx) error {
	if employeeParam := c.Query("employee_id"); employeeParam != "" {
		employeeID, err := uuid.Parse(employeeParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid employee_id format",
			})
		}

		apps, err := h.appRepo.FindByEmployee(employeeID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list applications",
			})
		}
		return c.JSON(fiber.Map{"applications": apps})
	}

	if jobParam := c.Query("job_id"); jobParam != "" {
		jobID, err := uuid.Parse(jobParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job_id format",
			})
		}

		apps, err := h.appRepo.FindByJob(jobID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list applications",
			})
		}
		return c.JSON(fiber.Map{"applications": apps})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "employee_id or job_id query parameter is required",
	})
}

// HandleUpdateStatus handles PUT /applications/:id/status
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	var req models.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.ApplicationStatus(req.Status)
	switch status {
	case models.ApplicationApplied, models.ApplicationShortlisted,
		models.ApplicationInterview, models.ApplicationRejected:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
		})
	}

	app, err := h.appRepo.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if err := h.appRepo.UpdateStatus(appID, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	notification := &models.Notification{
		UserID:    app.EmployeeID,
		Type:      "application_status",
		Title:     "Application updated",
		Message:   fmt.Sprintf("Your application status changed to %s.", status),
		RelatedID: &app.ID,
	}
	if err := h.notifRepo.Create(notification); err != nil {
		h.logger.Warn("failed to create status notification",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"message": "Status updated",
		"status":  string(status),
	})
}
