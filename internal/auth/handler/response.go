package handler

import (
	"errors"
	"log/slog"

	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to the stable {error, message} body.
// Internal detail never reaches the wire; unexpected errors become a
// generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherrors.ErrInvalidInput):
		return respondMessage(c, fiber.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, autherrors.ErrWeakPassword):
		return respondMessage(c, fiber.StatusBadRequest, "weak_password",
			"password must be at least 8 characters with upper case, lower case, a digit and a symbol")
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		return respondMessage(c, fiber.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, autherrors.ErrTokenExpired),
		errors.Is(err, autherrors.ErrTokenInvalid),
		errors.Is(err, autherrors.ErrTokenRevoked),
		errors.Is(err, autherrors.ErrInvalidTokenType):
		return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
	case errors.Is(err, autherrors.ErrAdminRequired):
		return respondMessage(c, fiber.StatusForbidden, "forbidden", "administrator privileges required")
	case errors.Is(err, autherrors.ErrUserNotFound):
		return respondMessage(c, fiber.StatusNotFound, "not_found", "the user no longer exists")
	case errors.Is(err, autherrors.ErrEmailAlreadyInUse):
		return respondMessage(c, fiber.StatusConflict, "user_exists", "a user with this email already exists")
	case errors.Is(err, autherrors.ErrBackendUnavailable):
		return respondMessage(c, fiber.StatusServiceUnavailable, "backend_unavailable", "the operation is currently unavailable")
	default:
		slog.Error("unexpected error", "error", err)
		return respondMessage(c, fiber.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

func respondMessage(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
