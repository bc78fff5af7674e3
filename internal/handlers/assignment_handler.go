package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

type assignmentApplicationService interface {
	Assign(
		ctx context.Context,
		actorID int64,
		role string,
		userID int64,
		programID int64,
	) (*services.AssignResult, error)
	ListForUser(ctx context.Context, actorID int64, role string) ([]models.AssignmentProgress, error)
}

type AssignmentHandler struct {
	service assignmentApplicationService
}

func NewAssignmentHandler(service assignmentApplicationService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignRequest struct {
	UserID    int64 `json:"user_id"`
	ProgramID int64 `json:"program_id"`
}

func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	result, err := h.service.Assign(c.Context(), actorID, role, req.UserID, req.ProgramID)
	if err != nil {
		return mapServiceError(c, err, "User or program not found")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"assignment":     result.Assignment,
		"workouts_total": result.WorkoutsTotal,
	})
}

func (h *AssignmentHandler) ListAssignments(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	assignments, err := h.service.ListForUser(c.Context(), actorID, role)
	if err != nil {
		return mapServiceError(c, err, "Assignments not found")
	}

	return c.JSON(fiber.Map{"assignments": assignments})
}
