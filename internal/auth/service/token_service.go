package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/CiscoDiscoMisco-source/auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	IssueAccess(userID string) (string, time.Time, error)
	IssueRefresh(userID string) (string, time.Time, error)
	Verify(tokenString string) (*Claims, error)
	Refresh(refreshToken string) (string, time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// Claims is the wire-level claim set: sub, jti, iat, exp plus the local
// type marker. Externally issued tokens verify under the same secret but
// carry no type claim.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"type,omitempty"`
	// RefreshID correlates an access token with the refresh event that
	// minted it. Audit only, never consulted for revocation.
	RefreshID string `json:"refresh_id,omitempty"`
}

type TokenService struct {
	secret             []byte
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

func NewTokenService(secret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		secret:             []byte(secret),
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) IssueAccess(userID string) (string, time.Time, error) {
	return ts.issue(userID, constant.TokenTypeAccess, ts.AccessTokenExpiry, "")
}

func (ts *TokenService) IssueRefresh(userID string) (string, time.Time, error) {
	return ts.issue(userID, constant.TokenTypeRefresh, ts.RefreshTokenExpiry, "")
}

func (ts *TokenService) issue(userID, tokenType string, ttl time.Duration, refreshID string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Type:      tokenType,
		RefreshID: refreshID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify checks signature and expiry only; revocation is enforced at the
// request-authentication boundary.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", autherrors.ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, autherrors.ErrTokenInvalid
	}

	return claims, nil
}

// Refresh mints a new access token from a refresh-typed token. The result
// carries a fresh jti and a refresh_id linking it to this refresh event.
func (ts *TokenService) Refresh(refreshToken string) (string, time.Time, error) {
	claims, err := ts.Verify(refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	if claims.Type != constant.TokenTypeRefresh {
		return "", time.Time{}, autherrors.ErrInvalidTokenType
	}

	return ts.issue(claims.Subject, constant.TokenTypeAccess, ts.AccessTokenExpiry, uuid.NewString())
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}
