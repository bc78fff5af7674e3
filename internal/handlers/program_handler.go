package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

type catalogApplicationService interface {
	CreateProgram(
		ctx context.Context,
		actorID int64,
		role string,
		input services.CreateProgramInput,
	) (*models.Program, error)
	CreateWorkout(
		ctx context.Context,
		actorID int64,
		role string,
		programID int64,
		input services.CreateWorkoutInput,
	) (*models.Workout, error)
	ListPrograms(ctx context.Context, actorID int64, role string) ([]models.Program, error)
	GetProgram(
		ctx context.Context,
		actorID int64,
		role string,
		programID int64,
	) (*models.ProgramDetail, error)
}

type ProgramHandler struct {
	service catalogApplicationService
}

func NewProgramHandler(service catalogApplicationService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type createProgramRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type createWorkoutRequest struct {
	TargetMuscle string  `json:"target_muscle"`
	Description  *string `json:"description,omitempty"`
	SetCount     int     `json:"set_count"`
	Equipment    *string `json:"equipment,omitempty"`
}

func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	var req createProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	program, err := h.service.CreateProgram(c.Context(), actorID, role, services.CreateProgramInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapServiceError(c, err, "Program not found")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"program": program})
}

func (h *ProgramHandler) CreateWorkout(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	programID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || programID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid program id"})
	}

	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	workout, err := h.service.CreateWorkout(c.Context(), actorID, role, programID, services.CreateWorkoutInput{
		TargetMuscle: req.TargetMuscle,
		Description:  req.Description,
		SetCount:     req.SetCount,
		Equipment:    req.Equipment,
	})
	if err != nil {
		return mapServiceError(c, err, "Program not found")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	programs, err := h.service.ListPrograms(c.Context(), actorID, role)
	if err != nil {
		return mapServiceError(c, err, "Program not found")
	}

	return c.JSON(fiber.Map{"programs": programs})
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	programID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || programID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid program id"})
	}

	detail, err := h.service.GetProgram(c.Context(), actorID, role, programID)
	if err != nil {
		return mapServiceError(c, err, "Program not found")
	}

	return c.JSON(fiber.Map{"program": detail})
}
