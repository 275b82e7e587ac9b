package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/delivery/http/cookie"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware resolves the session cookie into a snapshot on the request.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cookies  *cookie.Jar
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, cookies *cookie.Jar, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookies: cookies, logger: logger}
}

// Load attaches the session snapshot when the cookie names a live session.
// Stale cookies are cleared. A session store outage leaves the request anonymous.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.cookies.Session(c)
		if token == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		snapshot, err := m.sessions.Resolve(ctx, token)
		switch {
		case err == nil:
			deliverycontext.SetSession(c, snapshot)
		case errors.Is(err, domainerrors.ErrNotAuthenticated):
			m.cookies.ClearSession(c)
		default:
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Error("Failed to resolve session", slog.Any("error", err))
		}

		return next(c)
	}
}

// RequireSession redirects anonymous requests to the login page.
// It must be used AFTER Load.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")

		if !deliverycontext.IsAuthenticated(c) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		return next(c)
	}
}
