package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/delivery/http/cookie"
	"secretwall/internal/delivery/http/view"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// AuthHandler serves local registration, login and logout.
type AuthHandler struct {
	credentials usecase.CredentialUsecase
	sessions    usecase.SessionUsecase
	cookies     *cookie.Jar
	starter     sessionStarter
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	credentials usecase.CredentialUsecase,
	sessions usecase.SessionUsecase,
	cookies *cookie.Jar,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		sessions:    sessions,
		cookies:     cookies,
		starter:     sessionStarter{sessions: sessions, cookies: cookies},
		logger:      logger,
	}
}

func (h *AuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, &view.Page{Title: "Register"})
}

// Register creates a local account and signs it in. Rejected input goes back to the form.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/register")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	user, err := h.credentials.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if isClientError(err) {
			return c.Redirect(http.StatusSeeOther, "/register")
		}

		return errors.WithStack(err)
	}

	if err := h.starter.start(c, h.log(c), user); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/secrets")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, &view.Page{Title: "Login"})
}

// Login verifies a username/password pair and signs the user in.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		h.log(c).Debug("Malformed login form", slog.Any("error", err))

		return h.renderLoginFailure(c, http.StatusBadRequest, "")
	}

	user, err := h.credentials.Verify(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if errors.Is(err, domainerrors.ErrInvalidCredentials) {
		return h.renderLoginFailure(c, http.StatusUnauthorized, req.Username)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.starter.start(c, h.log(c), user); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/secrets")
}

// renderLoginFailure shows the login form again with the generic credentials message.
func (h *AuthHandler) renderLoginFailure(c echo.Context, status int, username string) error {
	return c.Render(status, view.PageLogin, &view.Page{
		Title:     "Login",
		FormError: domainerrors.ErrInvalidCredentials.Message(),
		FormData:  map[string]string{"username": username},
	})
}

// Logout ends the session. A store failure is logged and the browser is signed out anyway.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), h.cookies.Session(c)); err != nil {
		h.log(c).Error("Logout failed", slog.Any("error", err))
	}
	h.cookies.ClearSession(c)

	return c.Redirect(http.StatusSeeOther, "/")
}

// isClientError reports whether err is an AppError in the 4xx range.
func isClientError(err error) bool {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.HTTPCode() >= http.StatusBadRequest && appErr.HTTPCode() < http.StatusInternalServerError
}
