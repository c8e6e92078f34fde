// Package external talks to the managed identity backend over its REST
// API. It is the primary authentication path; any error it returns sends
// the login coordinator down the local fallback.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/internal/auth/domain"
)

var (
	ErrSignInFailed = errors.New("external sign-in failed")
	// ErrMalformedSession covers nominally successful responses that are
	// missing the user id or a usable expiry. They are never surfaced as
	// success with partial data.
	ErrMalformedSession = errors.New("malformed external session payload")
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"user_metadata"`
}

type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         userPayload `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.ExternalSession, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrSignInFailed, resp.StatusCode)
	}

	var payload sessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	return payload.toSession()
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.ExternalProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("external profile lookup failed: status %d", resp.StatusCode)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if payload.ID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrMalformedSession)
	}

	return payload.toProfile(), nil
}

func (p *sessionPayload) toSession() (*domain.ExternalSession, error) {
	if p.AccessToken == "" || p.User.ID == "" {
		return nil, fmt.Errorf("%w: missing user id or token", ErrMalformedSession)
	}

	var expiresAt time.Time
	switch {
	case p.ExpiresAt > 0:
		expiresAt = time.Unix(p.ExpiresAt, 0).UTC()
	case p.ExpiresIn > 0:
		expiresAt = time.Now().UTC().Add(time.Duration(p.ExpiresIn) * time.Second)
	default:
		return nil, fmt.Errorf("%w: missing expiry", ErrMalformedSession)
	}

	return &domain.ExternalSession{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         *p.User.toProfile(),
	}, nil
}

func (u *userPayload) toProfile() *domain.ExternalProfile {
	return &domain.ExternalProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.UserMetadata.FirstName,
		LastName:  u.UserMetadata.LastName,
	}
}
