package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

type MessageHandler struct {
	msgRepo repositories.MessageRepository
}

func NewMessageHandler(msgRepo repositories.MessageRepository) *MessageHandler {
	return &MessageHandler{
		msgRepo: msgRepo,
	}
}

// HandleSend handles POST /messages
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	senderID, err := uuid.Parse(req.SenderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid sender_id format",
		})
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recipient_id format",
		})
	}

	if req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body is required",
		})
	}

	var applicationID *uuid.UUID
	if req.ApplicationID != "" {
		appID, err := uuid.Parse(req.ApplicationID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid application_id format",
			})
		}
		applicationID = &appID
	}

	message := &models.Message{
		ID:            uuid.New(),
		SenderID:      senderID,
		RecipientID:   recipientID,
		ApplicationID: applicationID,
		Body:          req.Body,
		CreatedAt:     time.Now(),
	}

	if err := h.msgRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleListConversation handles GET /messages?user_id=&peer_id=
func (h *MessageHandler) HandleListConversation(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id query parameter is required",
		})
	}

	peerID, err := uuid.Parse(c.Query("peer_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "peer_id query parameter is required",
		})
	}

	messages, err := h.msgRepo.FindConversation(userID, peerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// HandleMarkRead handles PUT /messages/read?sender_id=&recipient_id=
func (h *MessageHandler) HandleMarkRead(c *fiber.Ctx) error {
	senderID, err := uuid.Parse(c.Query("sender_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sender_id query parameter is required",
		})
	}

	recipientID, err := uuid.Parse(c.Query("recipient_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "recipient_id query parameter is required",
		})
	}

	if err := h.msgRepo.MarkConversationRead(senderID, recipientID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark messages read",
		})
	}

	return c.JSON(fiber.Map{"message": "Messages marked read"})
}
