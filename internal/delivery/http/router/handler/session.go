// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"

	"secretwall/internal/delivery/http/cookie"
	"secretwall/internal/domain/entity"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/labstack/echo/v4"
)

// sessionStarter signs a user in on the current browser.
type sessionStarter struct {
	sessions usecase.SessionUsecase
	cookies  *cookie.Jar
}

// start replaces any session the browser already holds with a new one for user.
func (s sessionStarter) start(c echo.Context, logger *slog.Logger, user *entity.User) error {
	ctx := c.Request().Context()

	if old := s.cookies.Session(c); old != "" {
		if err := s.sessions.Logout(ctx, old); err != nil {
			logger.Warn("Failed to discard previous session", slog.Any("error", err))
		}
	}

	out, err := s.sessions.Authenticate(ctx, user)
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	s.cookies.SetSession(c, out.Token, out.Session.ExpiresAt)

	return nil
}
