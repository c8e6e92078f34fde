package dto

import "time"

type RefreshResponse struct {
	AccessToken    string    `json:"access_token"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}
