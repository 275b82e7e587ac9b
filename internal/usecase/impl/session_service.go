package impl

import (
	"context"
	"log/slog"
	"time"

	"secretwall/config"
	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/domain/entity"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/domain/repository"
	"secretwall/internal/domain/service"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessions repository.SessionRepository
	tokens   service.SessionTokenService
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Sessions repository.SessionRepository
	Tokens   service.SessionTokenService
	Config   *config.Config
	Logger   *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessions: params.Sessions,
		tokens:   params.Tokens,
		ttl:      params.Config.Session.TTL,
		now:      time.Now,
		logger:   params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate stores a new session for user and signs a token for it. Sessions that
// already expired are purged on the way.
func (srv *sessionService) Authenticate(ctx context.Context, user *entity.User) (*usecase.AuthenticateOutput, error) {
	now := srv.now()
	srv.purgeExpired(ctx, now)

	session := &entity.Session{
		ID:        uuid.New(),
		Snapshot:  user.Snapshot(),
		CreatedAt: now,
		ExpiresAt: now.Add(srv.ttl),
	}

	if err := srv.sessions.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Any("user_id", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create session")
	}

	token, err := srv.tokens.Issue(session.ID, session.ExpiresAt)
	if err != nil {
		if delErr := srv.sessions.Delete(ctx, session.ID); delErr != nil {
			srv.log(ctx).Warn("Failed to discard unsigned session", slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to sign session token")
	}

	srv.log(ctx).Info("Session created", slog.Any("user_id", user.ID), slog.Any("session_id", session.ID))

	return &usecase.AuthenticateOutput{Session: session, Token: token}, nil
}

func (srv *sessionService) purgeExpired(ctx context.Context, now time.Time) {
	removed, err := srv.sessions.DeleteExpired(ctx, now)
	if err != nil {
		srv.log(ctx).Warn("Failed to purge expired sessions", slog.Any("error", err))

		return
	}
	if removed > 0 {
		srv.log(ctx).Debug("Purged expired sessions", slog.Int64("count", removed))
	}
}

// Resolve returns the identity snapshot held by the session behind token.
func (srv *sessionService) Resolve(ctx context.Context, token string) (*entity.SessionSnapshot, error) {
	if token == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}

	sessionID, err := srv.tokens.Parse(token)
	if err != nil {
		srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))

		return nil, domainerrors.ErrNotAuthenticated
	}

	session, err := srv.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, domainerrors.ErrNotAuthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.IsExpired(srv.now()) {
		if err := srv.sessions.Delete(ctx, session.ID); err != nil {
			srv.log(ctx).Warn("Failed to delete expired session", slog.Any("session_id", session.ID), slog.Any("error", err))
		}

		return nil, domainerrors.ErrNotAuthenticated
	}

	return &session.Snapshot, nil
}

// Logout deletes the session behind token, if any.
func (srv *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionID, err := srv.tokens.Parse(token)
	if err != nil {
		return nil
	}

	if err := srv.sessions.Delete(ctx, sessionID); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("session_id", sessionID), slog.Any("error", err))

		return domainerrors.ErrLogoutFailed.WithDetails(err.Error())
	}

	srv.log(ctx).Info("Session destroyed", slog.Any("session_id", sessionID))

	return nil
}
