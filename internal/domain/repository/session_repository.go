package repository

import (
	"context"
	"errors"
	"time"

	"secretwall/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the server-side session store.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes every session whose expiry is before now and reports how many went.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
