package usecase

import (
	"context"

	"secretwall/internal/domain/entity"
)

// AuthenticateOutput carries the new session and the cookie token naming it.
type AuthenticateOutput struct {
	Session *entity.Session
	Token   string
}

// SessionUsecase manages server-side sessions.
type SessionUsecase interface {
	// Authenticate opens a session holding the user's snapshot.
	Authenticate(ctx context.Context, user *entity.User) (*AuthenticateOutput, error)
	// Resolve returns the snapshot behind token, or ErrNotAuthenticated.
	Resolve(ctx context.Context, token string) (*entity.SessionSnapshot, error)
	// Logout destroys the session behind token. Unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error
}
