package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/ProgramTrackBack/internal/services"
)

// mapServiceError translates service sentinels into HTTP responses. Every
// failure body carries a stable machine code next to the human message so
// callers can branch without string matching.
func mapServiceError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"code": "forbidden", "error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"code": "validation", "error": "Invalid request"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"code": "conflict", "error": "Program is already assigned to this user"})
	case errors.Is(err, services.ErrNotAssigned):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"code": "not_assigned", "error": "Program is not assigned to this user"})
	case errors.Is(err, services.ErrNotCompleted):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"code": "not_completed", "error": "Program is not completed yet"})
	case errors.Is(err, services.ErrDuplicateFeedback):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"code": "duplicate_feedback", "error": "Feedback was already submitted for this program"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"code": "not_found", "error": notFoundMessage})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"code": "internal", "error": "Request failed"})
	}
}

// parseActor reads the authenticated caller from the locals the auth
// middleware populates.
func parseActor(c *fiber.Ctx) (int64, string, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, "", errors.New("missing user id")
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return 0, "", errors.New("missing role")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", errors.New("invalid user id")
	}
	return userID, role, nil
}

func respondInvalidToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"code": "unauthenticated", "error": "Invalid token"})
}
