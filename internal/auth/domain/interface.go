package domain

//go:generate mockgen -source=interface.go -destination=../../mocks/mock_domain.go -package=mocks

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
}

type RevocationRepository interface {
	Insert(ctx context.Context, entry *RevocationEntry) error
	Exists(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	ListByUserID(ctx context.Context, userID string) ([]RevocationEntry, error)
}

type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*ExternalSession, error)
	GetUser(ctx context.Context, accessToken string) (*ExternalProfile, error)
}
