package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"anvaya/anvaya-api/internal/repositories"
)

type NotificationHandler struct {
	notifRepo repositories.NotificationRepository
}

func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		notifRepo: notifRepo,
	}
}

// HandleList handles GET /notifications?user_id=
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id query parameter is required",
		})
	}

	limit := c.QueryInt("limit", 10)

	notifications, err := h.notifRepo.FindByUser(userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

// HandleMarkRead handles PUT /notifications/read?user_id=
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id query parameter is required",
		})
	}

	if err := h.notifRepo.MarkAllRead(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark notifications read",
		})
	}

	return c.JSON(fiber.Map{"message": "Notifications marked read"})
}
