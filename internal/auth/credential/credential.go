// Package credential verifies presented secrets against stored salted
// hashes and enforces the password strength policy.
package credential

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Store struct {
	repo domain.UserRepository
}

func NewStore(repo domain.UserRepository) *Store {
	return &Store{repo: repo}
}

// FindByEmail performs a case-insensitive lookup on the normalized address.
// A missing user is (nil, nil), not an error.
func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// Verify compares a plaintext secret against a stored bcrypt hash.
// Neither input is ever logged.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashPassword rejects weak secrets before hashing.
func HashPassword(plain string) (string, error) {
	if !validPassword(plain) {
		return "", autherrors.ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPassword requires at least 8 characters with upper case, lower case,
// a digit and a symbol.
func validPassword(plain string) bool {
	if len(plain) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}
