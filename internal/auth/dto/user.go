package dto

import (
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
)

// UserOutput is the public profile shape; the password hash is never
// carried here.
type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResponse is returned by register and by both login paths; callers
// never need to branch on Provider.
type AuthResponse struct {
	Message        string     `json:"message"`
	User           UserOutput `json:"user"`
	AccessToken    string     `json:"access_token"`
	RefreshToken   string     `json:"refresh_token"`
	TokenExpiresAt time.Time  `json:"token_expires_at"`
	Provider       string     `json:"provider,omitempty"`
}

type SessionOutput struct {
	ID        string    `json:"id"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewSessionOutput(e domain.RevocationEntry) SessionOutput {
	return SessionOutput{
		ID:        e.JTI,
		RevokedAt: e.RevokedAt,
		ExpiresAt: e.ExpiresAt,
	}
}
