package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	v1 := app.Group("/api/v1")

	v1.Post("/register", h.Register)
	v1.Post("/login", h.Login)
	v1.Post("/refresh", h.RequireRefresh, h.Refresh)
	v1.Get("/me", h.RequireAuth, h.Me)
	v1.Post("/logout", h.RequireAuth, h.Logout)
	v1.Get("/tokens", h.RequireAuth, h.ListTokens)
	v1.Delete("/tokens/:id", h.RequireAuth, h.DeleteToken)

	// Admin-only endpoints, served by the elevated backend connection.
	admin := v1.Group("/admin", h.RequireAuth, h.RequireAdmin)
	admin.Get("/users", h.ListUsers)
	admin.Get("/users/:id/sessions", h.UserSessions)
}
