package handler

import (
	"strings"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/service"
	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

const (
	localClaims = "claims"
	localToken  = "token"
)

// requireToken validates the bearer token (signature + expiry), enforces
// the token type and then checks the revocation ledger. All three must
// pass before claims are trusted.
func (h *AuthHandler) requireToken(c *fiber.Ctx, refresh bool) error {
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))

	claims, err := h.tokens.Verify(raw)
	if err != nil {
		return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
	}

	if refresh {
		if claims.Type != constant.TokenTypeRefresh {
			return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
		}
	} else if claims.Type == constant.TokenTypeRefresh {
		// A refresh token only mints new access tokens; it is never an
		// access credential. Externally minted tokens carry no type claim
		// and pass through here.
		return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	revoked, err := h.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return respondError(c, err)
	}
	if revoked {
		return respondMessage(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
	}

	c.Locals(localClaims, claims)
	c.Locals(localToken, raw)

	return c.Next()
}

// RequireAuth admits access tokens and externally minted tokens.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	return h.requireToken(c, false)
}

// RequireRefresh gates the refresh route; only refresh-typed tokens are
// accepted there.
func (h *AuthHandler) RequireRefresh(c *fiber.Ctx) error {
	return h.requireToken(c, true)
}

// RequireAdmin gates the admin group; a valid identity without the admin
// flag gets 403, never a silent downgrade.
func (h *AuthHandler) RequireAdmin(c *fiber.Ctx) error {
	claims := claimsFromCtx(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil || !user.IsAdmin {
		return respondMessage(c, fiber.StatusForbidden, "forbidden", "administrator privileges required")
	}

	return c.Next()
}

func claimsFromCtx(c *fiber.Ctx) *service.Claims {
	claims, _ := c.Locals(localClaims).(*service.Claims)
	return claims
}

func tokenFromCtx(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}
