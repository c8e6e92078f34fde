package service

import (
	"context"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
)

// AdminService runs on the elevated backend connection. When that
// connection failed validation at startup both repositories are nil and
// every call fails closed; there is no fallback to standard privilege.
type AdminService struct {
	users  domain.UserRepository
	ledger domain.RevocationRepository
}

func NewAdminService(users domain.UserRepository, ledger domain.RevocationRepository) *AdminService {
	return &AdminService{users: users, ledger: ledger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.users == nil {
		return nil, autherrors.ErrBackendUnavailable
	}

	return s.users.List(ctx)
}

func (s *AdminService) ListUserSessions(ctx context.Context, userID string) ([]domain.RevocationEntry, error) {
	if s.ledger == nil {
		return nil, autherrors.ErrBackendUnavailable
	}

	return s.ledger.ListByUserID(ctx, userID)
}
