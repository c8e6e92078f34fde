package service

import (
	"context"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
)

// RevocationService is the ledger of invalidated token ids. A jti moves
// ACTIVE (no row) -> REVOKED (row) -> PURGED (row deleted after expiry).
type RevocationService struct {
	repo domain.RevocationRepository
}

func NewRevocationService(repo domain.RevocationRepository) *RevocationService {
	return &RevocationService{repo: repo}
}

// Revoke is idempotent; revoking an already-revoked jti is a no-op success.
func (s *RevocationService) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	entry := &domain.RevocationEntry{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now().UTC(),
	}

	return s.repo.Insert(ctx, entry)
}

func (s *RevocationService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.repo.Exists(ctx, jti)
}

// Sweep purges entries past their natural expiry. Unexpired entries stay,
// preserving the owner's view of previously active sessions.
func (s *RevocationService) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now().UTC())
}

// ListActiveForUser returns the user's not-yet-purged entries. This only
// covers sessions that were explicitly revoked; live tokens are never
// persisted.
func (s *RevocationService) ListActiveForUser(ctx context.Context, userID string) ([]domain.RevocationEntry, error) {
	return s.repo.ListByUserID(ctx, userID)
}
