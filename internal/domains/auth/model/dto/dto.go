package dto

import (
	"time"
)

const TokenTypeBearer = "Bearer"

// IssueTokenRequest names the operator the admin token is minted for.
type IssueTokenRequest struct {
	AdminID string `json:"admin_id" validate:"required,max=64"`
	Role    string `json:"role"     validate:"required,oneof=superadmin admin operator"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   int64     `json:"expires_in"`
}

// FromToken fills the response; ExpiresIn is whole seconds from now and never negative.
func (r *TokenResponse) FromToken(token string, expiresAt, now time.Time) {
	r.AccessToken = token
	r.TokenType = TokenTypeBearer
	r.ExpiresAt = expiresAt
	r.ExpiresIn = max(int64(expiresAt.Sub(now)/time.Second), 0)
}
