package handler

import (
	"context"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/dto"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/service"
	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users       *service.UserService
	tokens      service.TokenGenerator
	revocations *service.RevocationService
	admin       *service.AdminService
}

func NewAuthHandler(users *service.UserService, tokens service.TokenGenerator,
	revocations *service.RevocationService, admin *service.AdminService) *AuthHandler {
	return &AuthHandler{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		admin:       admin,
	}
}

// requestContext caps blocking work independently of the backend client's
// retry budget.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), constant.RequestTimeout)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid_input", "invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.users.Register(ctx, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondMessage(c, fiber.StatusBadRequest, "invalid_input", "invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.users.Login(ctx, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Refresh mints a new access token; the refresh middleware has already
// checked signature, type, expiry and revocation.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := tokenFromCtx(c)

	accessToken, expiresAt, err := h.tokens.Refresh(raw)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RefreshResponse{
		AccessToken:    accessToken,
		TokenExpiresAt: expiresAt,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := claimsFromCtx(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.Me(ctx, claims, tokenFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := claimsFromCtx(c)

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.users.Logout(ctx, claims.ID, claims.Subject, expiresAt); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Successfully logged out"})
}

// ListTokens returns the caller's revoked-but-unexpired sessions. Live
// tokens are never persisted, so they cannot appear here.
func (h *AuthHandler) ListTokens(c *fiber.Ctx) error {
	claims := claimsFromCtx(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	entries, err := h.revocations.ListActiveForUser(ctx, claims.Subject)
	if err != nil {
		return respondError(c, err)
	}

	tokens := make([]dto.SessionOutput, 0, len(entries))
	for _, entry := range entries {
		tokens = append(tokens, dto.NewSessionOutput(entry))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tokens": tokens})
}

// DeleteToken revokes an arbitrary jti owned by the caller. The expiry is
// unknown for tokens the ledger has never seen, so the refresh lifetime
// serves as a sweepable upper bound.
func (h *AuthHandler) DeleteToken(c *fiber.Ctx) error {
	claims := claimsFromCtx(c)
	jti := c.Params("id")
	if jti == "" {
		return respondMessage(c, fiber.StatusBadRequest, "invalid_input", "token id is required")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	expiresAt := time.Now().UTC().Add(h.tokens.GetRefreshTokenExpiry())
	if err := h.revocations.Revoke(ctx, jti, claims.Subject, expiresAt); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Token has been revoked"})
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.admin.ListUsers(ctx)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": out})
}

func (h *AuthHandler) UserSessions(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	entries, err := h.admin.ListUserSessions(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	sessions := make([]dto.SessionOutput, 0, len(entries))
	for _, entry := range entries {
		sessions = append(sessions, dto.NewSessionOutput(entry))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sessions": sessions})
}
