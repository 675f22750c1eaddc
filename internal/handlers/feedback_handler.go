package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jobtrackr/fit-engine/internal/models"
	"jobtrackr/fit-engine/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// HandleFeedback handles POST /analyses/:id/feedback.
func (h *FeedbackHandler) HandleFeedback(c *fiber.Ctx) error {
	analysisID := c.Params("id")

	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.feedback.RecordFeedback(analysisID, &req); err != nil {
		status, message := statusForError(err)
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	return c.JSON(fiber.Map{"status": "recorded"})
}
