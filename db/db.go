// Package db establishes and validates connections to the remote data
// backend. All connection retry policy lives here; callers never retry.
package db

import (
	"context"
	"fmt"
	"net/http"
	"time"

	autherrors "github.com/CiscoDiscoMisco-source/auth-service/internal/errors"
	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleElevated Role = "elevated"
)

type Options struct {
	DSN string
	// ProbeURL is hit with a plain GET before the pool is opened. Any HTTP
	// response, including 4xx, counts as reachable. Empty skips the probe.
	ProbeURL    string
	Role        Role
	MaxAttempts int
	RetryDelay  time.Duration
	HTTPClient  *http.Client
}

type Client struct {
	Pool *pgxpool.Pool
	Role Role
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Connect probes the backend, opens a pool and validates it with bounded
// trial queries. Exhausting the attempt budget yields ErrBackendUnavailable.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = constant.DefaultConnectMaxAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = constant.DefaultConnectRetryDelay
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	if opts.ProbeURL != "" {
		if err := probe(ctx, httpClient, opts.ProbeURL); err != nil {
			return nil, fmt.Errorf("%s connection: %w", opts.Role, err)
		}
	}

	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DB URL: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	if err := validate(ctx, pool, opts.MaxAttempts, opts.RetryDelay); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s connection: %w", opts.Role, err)
	}

	return &Client{Pool: pool, Role: opts.Role}, nil
}

// probe performs the lightweight reachability check. Only transport-level
// failure marks the backend unreachable.
func probe(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid probe URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: reachability probe failed: %v", autherrors.ErrBackendUnavailable, err)
	}
	resp.Body.Close()

	return nil
}

// validate runs trial queries with a fixed delay between attempts and
// succeeds on the first one that comes back.
func validate(ctx context.Context, db execer, maxAttempts int, delay time.Duration) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if _, err := db.Exec(ctx, "SELECT 1"); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt < maxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", autherrors.ErrBackendUnavailable, ctx.Err())
			}
		}
	}

	return fmt.Errorf("%w: trial query failed after %d attempts: %v", autherrors.ErrBackendUnavailable, maxAttempts, lastErr)
}
