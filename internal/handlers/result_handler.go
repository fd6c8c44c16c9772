package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"anvaya/anvaya-api/internal/models"
	"anvaya/anvaya-api/internal/repositories"
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	evalID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	response := models.ResultResponse{
		ID:     evaluation.ID.String(),
		Status: string(evaluation.Status),
	}

	if evaluation.Status == models.StatusCompleted && evaluation.MatchScore != nil {
		explanation := ""
		if evaluation.Explanation != nil {
			explanation = *evaluation.Explanation
		}
		response.Result = &models.MatchResultData{
			MatchScore:  *evaluation.MatchScore,
			Explanation: explanation,
		}
	}

	if evaluation.Status == models.StatusFailed {
		response.ErrorKind = evaluation.ErrorKind
		response.ErrorMessage = evaluation.ErrorMessage
	}

	return c.JSON(response)
}
