package handlers

import (
	"errors"
	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// viewerID returns the authenticated user id or "" for anonymous requests.
func viewerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func isStaff(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return role == domain.RoleStaff
}

// statusForError maps the domain error taxonomy onto HTTP statuses: missing
// ids become 404, permission failures 403, everything else is a 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrCartEntryNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
