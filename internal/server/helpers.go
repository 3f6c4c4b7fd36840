package server

import (
	"errors"

	"mealbridge/internal/models"

	"github.com/gofiber/fiber/v2"
)

// identityFrom returns the identity stored by the auth middleware.
func identityFrom(c *fiber.Ctx) (models.Identity, bool) {
	ident, ok := c.Locals("identity").(models.Identity)
	return ident, ok
}

// ensureActor lazily provisions the acting user. Used on the creation paths
// where a first-time identity is allowed.
func (s *Server) ensureActor(c *fiber.Ctx) (*models.User, error) {
	ident, ok := identityFrom(c)
	if !ok {
		return nil, models.NewUnauthorizedError("Authorization required")
	}
	return s.users.EnsureUser(c.Context(), ident)
}

// resolveActor returns the acting user, who must already exist.
func (s *Server) resolveActor(c *fiber.Ctx) (*models.User, error) {
	ident, ok := identityFrom(c)
	if !ok {
		return nil, models.NewUnauthorizedError("Authorization required")
	}
	return s.users.Resolve(c.Context(), ident)
}

// idParam parses the named route parameter as an entity id.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// respondError maps a service error onto the HTTP status for its code.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusBadRequest
	case models.CodeUnauthorized:
		status = fiber.StatusForbidden
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeInvalidState, models.CodeDuplicate, models.CodeSelfAction:
		status = fiber.StatusConflict
	}
	return models.RespondWithError(c, status, appErr)
}
