package db

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecer struct {
	failures int
	calls    int
}

func (f *fakeExecer) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.calls++
	if f.calls <= f.failures {
		return pgconn.CommandTag{}, errors.New("connection refused")
	}
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func TestProbeReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := probe(context.Background(), server.Client(), server.URL)
	assert.NoError(t, err)
}

// A 4xx response still proves the backend is reachable.
func TestProbeReachableOn4xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := probe(context.Background(), server.Client(), server.URL)
	assert.NoError(t, err)
}

func TestProbeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := probe(context.Background(), http.DefaultClient, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autherrors.ErrBackendUnavailable))
}

func TestValidateSucceedsFirstAttempt(t *testing.T) {
	db := &fakeExecer{}

	err := validate(context.Background(), db, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, db.calls)
}

func TestValidateRetriesThenSucceeds(t *testing.T) {
	db := &fakeExecer{failures: 2}

	err := validate(context.Background(), db, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, db.calls)
}

func TestValidateExhaustsAttempts(t *testing.T) {
	db := &fakeExecer{failures: 10}

	err := validate(context.Background(), db, 3, time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autherrors.ErrBackendUnavailable))
	assert.Equal(t, 3, db.calls)
}

func TestValidateHonorsContextCancel(t *testing.T) {
	db := &fakeExecer{failures: 10}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := validate(ctx, db, 3, time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, autherrors.ErrBackendUnavailable))
	assert.Equal(t, 1, db.calls)
}
