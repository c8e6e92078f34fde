package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/credential"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/dto"
	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/google/uuid"
)

const (
	ProviderExternal = "external"
	ProviderLocal    = "local"
)

// UserService coordinates registration and the dual-path login: the
// external identity backend is tried first, local verification is the
// fallback. The two attempts are strictly sequential.
type UserService struct {
	repo        domain.UserRepository
	creds       *credential.Store
	tokens      TokenGenerator
	identity    domain.IdentityProvider
	revocations *RevocationService
}

func NewUserService(repo domain.UserRepository, creds *credential.Store, tokens TokenGenerator,
	identity domain.IdentityProvider, revocations *RevocationService) *UserService {
	return &UserService{
		repo:        repo,
		creds:       creds,
		tokens:      tokens,
		identity:    identity,
		revocations: revocations,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := credential.NormalizeEmail(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	if email == "" || input.Password == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: email, password, first_name and last_name are required", autherrors.ErrInvalidInput)
	}
	if !credential.ValidEmail(email) {
		return nil, fmt.Errorf("%w: please provide a valid email address", autherrors.ErrInvalidInput)
	}

	hash, err := credential.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherrors.ErrEmailAlreadyInUse
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:        "User registered successfully",
		User:           dto.NewUserOutput(user),
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := credential.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", autherrors.ErrInvalidInput)
	}

	if s.identity != nil {
		resp, err := s.loginExternal(ctx, email, input.Password)
		if err == nil {
			return resp, nil
		}
		// Expected control flow, not a fault: the local path is the
		// designed fallback for every external failure mode.
		slog.Debug("external sign-in failed, trying local verification", "error", err)
	}

	return s.loginLocal(ctx, email, input.Password)
}

// loginExternal returns the backend's session tokens verbatim, creating a
// local profile row for first-time external users.
func (s *UserService) loginExternal(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	session, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := time.Now().UTC()
		user = &domain.User{
			ID:        session.User.ID,
			Email:     email,
			FirstName: session.User.FirstName,
			LastName:  session.User.LastName,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return &dto.AuthResponse{
		Message:        "Login successful",
		User:           dto.NewUserOutput(user),
		AccessToken:    session.AccessToken,
		RefreshToken:   session.RefreshToken,
		TokenExpiresAt: session.ExpiresAt,
		Provider:       ProviderExternal,
	}, nil
}

func (s *UserService) loginLocal(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Same error whether the user is missing or the password is wrong.
	if user == nil || !credential.Verify(user.PasswordHash, password) {
		return nil, autherrors.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:        "Login successful",
		User:           dto.NewUserOutput(user),
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: expiresAt,
		Provider:       ProviderLocal,
	}, nil
}

func (s *UserService) Logout(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	return s.revocations.Revoke(ctx, jti, userID, expiresAt)
}

// Me resolves the caller's profile. Sessions minted by the external backend
// (no local type claim) prefer its live profile, with the local row as
// fallback.
func (s *UserService) Me(ctx context.Context, claims *Claims, rawToken string) (*dto.UserOutput, error) {
	if claims.Type == "" && s.identity != nil {
		if profile, err := s.identity.GetUser(ctx, rawToken); err == nil {
			out := dto.UserOutput{
				ID:        profile.ID,
				Email:     profile.Email,
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				IsActive:  true,
			}
			return &out, nil
		}
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherrors.ErrUserNotFound
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
