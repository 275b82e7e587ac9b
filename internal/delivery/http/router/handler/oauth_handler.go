package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/delivery/http/cookie"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OAuthHandler serves the Google sign-in redirect and callback.
type OAuthHandler struct {
	oauth   usecase.OAuthUsecase
	cookies *cookie.Jar
	starter sessionStarter
	logger  *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(
	oauth usecase.OAuthUsecase,
	sessions usecase.SessionUsecase,
	cookies *cookie.Jar,
	logger *slog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		oauth:   oauth,
		cookies: cookies,
		starter: sessionStarter{sessions: sessions, cookies: cookies},
		logger:  logger,
	}
}

func (h *OAuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// Begin sends the browser to the Google consent page.
func (h *OAuthHandler) Begin(c echo.Context) error {
	start, err := h.oauth.BeginLogin()
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetState(c, start.State)

	return c.Redirect(http.StatusTemporaryRedirect, start.AuthURL)
}

// Callback finishes the Google sign-in. Every failure lands on the login page.
func (h *OAuthHandler) Callback(c echo.Context) error {
	expected := h.cookies.State(c)
	h.cookies.ClearState(c)

	if providerErr := c.QueryParam("error"); providerErr != "" {
		h.log(c).Info("Google sign-in declined", slog.String("reason", providerErr))

		return c.Redirect(http.StatusSeeOther, "/login")
	}

	state := c.QueryParam("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		h.log(c).Warn("OAuth state mismatch", slog.Any("error", domainerrors.ErrOAuthStateMismatch))

		return c.Redirect(http.StatusSeeOther, "/login")
	}

	out, err := h.oauth.CompleteLogin(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		h.log(c).Warn("Google sign-in failed", slog.Any("error", err))

		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.starter.start(c, h.log(c), out.User); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/secrets")
}
