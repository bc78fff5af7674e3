package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/ProgramTrackBack/internal/models"
)

type adminApplicationService interface {
	ChangeRole(
		ctx context.Context,
		actorID int64,
		actorRole string,
		targetID int64,
		newRole string,
	) (*models.User, error)
	ResetPassword(
		ctx context.Context,
		actorID int64,
		actorRole string,
		targetID int64,
		newPassword string,
	) (*models.User, error)
	SetActive(
		ctx context.Context,
		actorID int64,
		actorRole string,
		targetID int64,
		active bool,
	) (*models.User, error)
	ListAudit(ctx context.Context, actorRole string, limit, offset int) ([]models.AuditRecord, error)
}

type AdminHandler struct {
	service adminApplicationService
}

func NewAdminHandler(service adminApplicationService) *AdminHandler {
	return &AdminHandler{service: service}
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	targetID, err := parseTargetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid user id"})
	}

	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	user, err := h.service.ChangeRole(c.Context(), actorID, role, targetID, req.Role)
	if err != nil {
		return mapServiceError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}

func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	targetID, err := parseTargetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid user id"})
	}

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request body"})
	}

	user, err := h.service.ResetPassword(c.Context(), actorID, role, targetID, req.Password)
	if err != nil {
		return mapServiceError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}

func (h *AdminHandler) SetActive(c *fiber.Ctx) error {
	actorID, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	targetID, err := parseTargetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid user id"})
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil || req.Active == nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "active is required"})
	}

	user, err := h.service.SetActive(c.Context(), actorID, role, targetID, *req.Active)
	if err != nil {
		return mapServiceError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}

func (h *AdminHandler) ListAudit(c *fiber.Ctx) error {
	_, role, err := parseActor(c)
	if err != nil {
		return respondInvalidToken(c)
	}

	limit, offset := parsePagination(c)
	records, err := h.service.ListAudit(c.Context(), role, limit, offset)
	if err != nil {
		return mapServiceError(c, err, "Audit records not found")
	}

	return c.JSON(fiber.Map{"audit_records": records})
}

func parseTargetUserID(c *fiber.Ctx) (int64, error) {
	targetID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || targetID <= 0 {
		return 0, errInvalidTarget
	}
	return targetID, nil
}

var errInvalidTarget = fiber.NewError(fiber.StatusBadRequest, "invalid target user id")
