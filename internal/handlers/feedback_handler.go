package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type feedbackApplicationService interface {
	Submit(
		ctx context.Context,
		actorID int64,
		role string,
		programID int64,
		message string,
	) (*models.Feedback, error)
}

type FeedbackHandler struct {
	service feedbackApplicationService
}

func NewFeedbackHandler(service feedbackApplicationService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type submitFeedbackRequest struct {
	ProgramID int64  `json:"program_id"`
	Message   string `json:"message"`
}

func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	var req submitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	feedback, err := h.service.Submit(c.Context(), actorID, role, req.ProgramID, req.Message)
	if err != nil {
		return mapServiceError(c, err, "Program not found")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"feedback": feedback})
}
