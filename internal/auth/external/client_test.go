package external_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/external"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInSuccess(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"access_token": "ext-access",
			"refresh_token": "ext-refresh",
			"expires_at": %d,
			"user": {"id": "ext-user-1", "email": "alice@example.com",
				"user_metadata": {"first_name": "Alice", "last_name": "Smith"}}
		}`, expiresAt)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	session, err := client.SignIn(context.Background(), "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	assert.Equal(t, "ext-access", session.AccessToken)
	assert.Equal(t, "ext-refresh", session.RefreshToken)
	assert.Equal(t, expiresAt, session.ExpiresAt.Unix())
	assert.Equal(t, "ext-user-1", session.User.ID)
	assert.Equal(t, "Alice", session.User.FirstName)
	assert.Equal(t, "Smith", session.User.LastName)
}

func TestSignInExpiresInFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"access_token": "ext-access",
			"refresh_token": "ext-refresh",
			"expires_in": 3600,
			"user": {"id": "ext-user-1", "email": "alice@example.com"}
		}`)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	session, err := client.SignIn(context.Background(), "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestSignInRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "invalid_grant"}`)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	_, err := client.SignIn(context.Background(), "alice@example.com", "wrongpass")
	assert.True(t, errors.Is(err, external.ErrSignInFailed))
}

func TestSignInMissingUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"access_token": "ext-access",
			"refresh_token": "ext-refresh",
			"expires_in": 3600,
			"user": {"email": "alice@example.com"}
		}`)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	_, err := client.SignIn(context.Background(), "alice@example.com", "Str0ng!Pass")
	assert.True(t, errors.Is(err, external.ErrMalformedSession))
}

// A nominal success with no usable expiry is malformed, never a session
// with a zero expiry.
func TestSignInMissingExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"access_token": "ext-access",
			"refresh_token": "ext-refresh",
			"user": {"id": "ext-user-1", "email": "alice@example.com"}
		}`)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	_, err := client.SignIn(context.Background(), "alice@example.com", "Str0ng!Pass")
	assert.True(t, errors.Is(err, external.ErrMalformedSession))
}

func TestSignInUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := external.NewClient(server.URL, "anon-key")
	_, err := client.SignIn(context.Background(), "alice@example.com", "Str0ng!Pass")
	assert.True(t, errors.Is(err, external.ErrSignInFailed))
}

func TestGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer ext-access", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": "ext-user-1", "email": "alice@example.com",
			"user_metadata": {"first_name": "Alice", "last_name": "Smith"}}`)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	profile, err := client.GetUser(context.Background(), "ext-access")
	require.NoError(t, err)

	assert.Equal(t, "ext-user-1", profile.ID)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.FirstName)
}

func TestGetUserRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := external.NewClient(server.URL, "anon-key")
	_, err := client.GetUser(context.Background(), "bad-token")
	assert.Error(t, err)
}
