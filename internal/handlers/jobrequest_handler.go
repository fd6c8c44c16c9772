package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

type JobRequestHandler struct {
	requestRepo repositories.JobRequestRepository
	msgRepo     repositories.MessageRepository
	notifRepo   repositories.NotificationRepository
	logger      *zap.Logger
}

func NewJobRequestHandler(
	requestRepo repositories.JobRequestRepository,
	msgRepo repositories.MessageRepository,
	notifRepo repositories.NotificationRepository,
	logger *zap.Logger,
) *JobRequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &JobRequestHandler{
		requestRepo: requestRepo,
		msgRepo:     msgRepo,
		notifRepo:   notifRepo,
		logger:      logger,
	}
}

// HandleCreate handles POST /job-requests
func (h *JobRequestHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequestRequest
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

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	request := &models.JobRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Budget:      req.Budget,
		Status:      models.JobRequestOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.requestRepo.Create(request); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleList handles GET /job-requests. Without a filter it returns open
// requests; ?employee_id= returns one employee's requests in any state.
func (h *JobRequestHandler) HandleList(c *fiber.Ctx) error {
	if employeeParam := c.Query("employee_id"); employeeParam != "" {
		employeeID, err := uuid.Parse(employeeParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid employee_id format",
			})
		}

		requests, err := h.requestRepo.FindByEmployee(employeeID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list job requests",
			})
		}
		return c.JSON(fiber.Map{"job_requests": requests})
	}

	limit := c.QueryInt("limit", 50)

	requests, err := h.requestRepo.FindOpen(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list job requests",
		})
	}

	return c.JSON(fiber.Map{"job_requests": requests})
}

// HandleGet handles GET /job-requests/:id
func (h *JobRequestHandler) HandleGet(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job request ID format",
		})
	}

	request, err := h.requestRepo.FindByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job request not found",
		})
	}

	return c.JSON(request)
}

// HandleUpdate handles PUT /job-requests/:id
func (h *JobRequestHandler) HandleUpdate(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job request ID format",
		})
	}

	request, err := h.requestRepo.FindByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job request not found",
		})
	}

	var req models.UpdateJobRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Status != "" {
		status := models.JobRequestStatus(req.Status)
		switch status {
		case models.JobRequestOpen, models.JobRequestAssigned, models.JobRequestClosed:
			request.Status = status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status value",
			})
		}
	}

	if req.Title != "" {
		request.Title = req.Title
	}
	if req.Description != "" {
		request.Description = req.Description
	}
	request.Category = req.Category
	request.Location = req.Location
	request.Budget = req.Budget
	request.UpdatedAt = time.Now()

	if err := h.requestRepo.Update(request); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update job request",
		})
	}

	return c.JSON(request)
}

// HandleDelete handles DELETE /job-requests/:id
func (h *JobRequestHandler) HandleDelete(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job request ID format",
		})
	}

	if err := h.requestRepo.Delete(requestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete job request",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleExpressInterest handles POST /job-requests/:id/interest. The
// employer's note reaches the requester as both a direct message and a
// notification.
func (h *JobRequestHandler) HandleExpressInterest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job request ID format",
		})
	}

	var req models.ExpressInterestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	employerID, err := uuid.Parse(req.EmployerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid employer_id format",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	request, err := h.requestRepo.FindByID(requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job request not found",
		})
	}

	message := &models.Message{
		ID:          uuid.New(),
		SenderID:    employerID,
		RecipientID: request.EmployeeID,
		Body:        req.Message,
		CreatedAt:   time.Now(),
	}
	if err := h.msgRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send interest message",
		})
	}

	notification := &models.Notification{
		UserID:    request.EmployeeID,
		Type:      "employer_interest",
		Title:     "An employer is interested in your request",
		Message:   fmt.Sprintf("An employer responded to %q.", request.Title),
		RelatedID: &request.ID,
	}
	if err := h.notifRepo.Create(notification); err != nil {
		h.logger.Warn("failed to create interest notification", zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Interest sent",
	})
}
