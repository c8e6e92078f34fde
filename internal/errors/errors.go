package errors

import (
	"errors"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrAdminRequired      = errors.New("administrator privileges required")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
