package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

type progressApplicationService interface {
	MarkDone(
		ctx context.Context,
		actorID int64,
		role string,
		workoutID int64,
	) (*services.MarkDoneResult, error)
}

type ProgressHandler struct {
	service progressApplicationService
}

func NewProgressHandler(service progressApplicationService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) MarkDone(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	workoutID, err := strconv.ParseInt(c.Params("workoutID"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid workout id"})
	}

	result, err := h.service.MarkDone(c.Context(), actorID, role, workoutID)
	if err != nil {
		return mapServiceError(c, err, "Workout progress not found")
	}

	return c.JSON(fiber.Map{
		"progress":          result.Entry,
		"program_id":        result.ProgramID,
		"program_completed": result.ProgramCompleted,
	})
}
