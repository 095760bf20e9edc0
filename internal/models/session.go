package models

import "github.com/golang-jwt/jwt/v5"

// Session is the in-memory identity derived from the persisted bearer
// token. The zero value is unauthenticated.
type Session struct {
	UserID   string
	Name     string
	Role     Role
	ImageURL string
}

// Authenticated reports whether a user identity is present.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// TokenClaims is the bearer token payload the client consumes. Claims are
// decoded without signature verification and gate rendering only; the
// server re-validates the token on every request it receives.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	ImageURL string `json:"image_url"`
	jwt.RegisteredClaims
}

// Session converts the claims into a session value.
func (c *TokenClaims) Session() Session {
	return Session{
		UserID:   c.UserID,
		Name:     c.Name,
		Role:     c.Role,
		ImageURL: c.ImageURL,
	}
}

// LoginRequest holds credentials for the authentication endpoint.
type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
