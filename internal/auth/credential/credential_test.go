package credential_test

import (
	"context"
	"errors"
	"testing"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/credential"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/CiscoDiscoMisco-source/auth-service/internal/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRejectsWeakSecrets(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1!xyz"},
		{"no upper case", "str0ng!pass"},
		{"no lower case", "STR0NG!PASS"},
		{"no digit", "Strong!Pass"},
		{"no symbol", "Str0ngPass"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := credential.HashPassword(tc.password)
			assert.True(t, errors.Is(err, autherrors.ErrWeakPassword))
			assert.Empty(t, hash)
		})
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := credential.HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Str0ng!Pass")

	assert.True(t, credential.Verify(hash, "Str0ng!Pass"))
	assert.False(t, credential.Verify(hash, "wrongpass"))
	assert.False(t, credential.Verify("", "Str0ng!Pass"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", credential.NormalizeEmail("  Alice@Example.COM "))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, credential.ValidEmail("alice@example.com"))
	assert.False(t, credential.ValidEmail("alice"))
	assert.False(t, credential.ValidEmail("alice@example"))
	assert.False(t, credential.ValidEmail("@example.com"))
}

func TestFindByEmailNormalizesLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	store := credential.NewStore(mockRepo)

	expected := &domain.User{ID: "user-123", Email: "alice@example.com"}
	mockRepo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(expected, nil)

	user, err := store.FindByEmail(context.Background(), "  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, expected, user)
}
