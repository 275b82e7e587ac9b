package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionSnapshot is the identity kept in a session. It is never refreshed from the user store.
type SessionSnapshot struct {
	UserID   uuid.UUID
	Username string
}

// Session is a server-side authenticated session. The browser only holds a signed token naming its ID.
type Session struct {
	ID        uuid.UUID
	Snapshot  SessionSnapshot
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is no longer valid at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
