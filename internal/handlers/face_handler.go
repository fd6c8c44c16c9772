package handlers

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/services"
)

type FaceHandler struct {
	faceAuth services.FaceAuthService
}

func NewFaceHandler(faceAuth services.FaceAuthService) *FaceHandler {
	return &FaceHandler{
		faceAuth: faceAuth,
	}
}

// HandleRegister handles POST /face/register
func (h *FaceHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.FaceRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	frame, ok := decodeFrame(c, req.Frame, "frame")
	if !ok {
		return nil
	}

	if err := h.faceAuth.Register(c.Context(), normalizeEmail(req.Email), frame); err != nil {
		return faceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Face registered successfully",
	})
}

// HandleVerify handles POST /face/verify
func (h *FaceHandler) HandleVerify(c *fiber.Ctx) error {
	var req models.FaceVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	frame, ok := decodeFrame(c, req.Frame, "frame")
	if !ok {
		return nil
	}

	result, err := h.faceAuth.Verify(c.Context(), normalizeEmail(req.Email), frame)
	if err != nil {
		return faceError(c, err)
	}

	return c.JSON(models.FaceVerifyResponse{
		Matched:    result.Matched,
		Similarity: result.Similarity,
		Threshold:  result.Threshold,
	})
}

// HandleLiveness handles POST /face/liveness
func (h *FaceHandler) HandleLiveness(c *fiber.Ctx) error {
	var req models.LivenessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	openFrame, ok := decodeFrame(c, req.OpenFrame, "open_frame")
	if !ok {
		return nil
	}

	closedFrame, ok := decodeFrame(c, req.ClosedFrame, "closed_frame")
	if !ok {
		return nil
	}

	result, err := h.faceAuth.CheckLiveness(c.Context(), openFrame, closedFrame)
	if err != nil {
		return faceError(c, err)
	}

	return c.JSON(models.LivenessResponse{
		Live:    result.Live,
		EAROpen: result.EAROpen,
		EARShut: result.EARShut,
		Margin:  result.Margin,
	})
}

func decodeFrame(c *fiber.Ctx, encoded, field string) ([]byte, bool) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": field + " is required",
		})
		return nil, false
	}

	frame, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid base64 in " + field,
		})
		return nil, false
	}

	return frame, true
}

// faceError maps pipeline errors onto responses. A missing face is
// retryable (the client should prompt for another frame); a missing
// reference means the user must register first.
func faceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoFaceDetected):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":     "No face detected. Please capture another frame.",
			"retryable": true,
		})
	case errors.Is(err, services.ErrNoReference):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No reference face registered for this account.",
		})
	case errors.Is(err, services.ErrEncoderMismatch):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Stored face data is incompatible with the current encoder. Please register again.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Face processing failed",
		})
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
