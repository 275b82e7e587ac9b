package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by the session cookie token.
type SessionClaims struct {
	SessionID uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTokenService signs and verifies session cookie tokens.
type SessionTokenService interface {
	// Issue signs a token naming sessionID that expires at expiresAt.
	Issue(sessionID uuid.UUID, expiresAt time.Time) (string, error)

	// Parse verifies the token signature and returns the session id. Session expiry is
	// checked against the stored session, not the token.
	Parse(token string) (uuid.UUID, error)
}
