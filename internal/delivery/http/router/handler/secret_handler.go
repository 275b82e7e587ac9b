package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/delivery/http/view"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/labstack/echo/v4"
)

type submitRequest struct {
	Secret string `form:"secret"`
}

// SecretHandler serves the secret wall and the submit form.
type SecretHandler struct {
	secrets usecase.SecretUsecase
	logger  *slog.Logger
}

// NewSecretHandler is the constructor for SecretHandler, injected by Fx.
func NewSecretHandler(secrets usecase.SecretUsecase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{secrets: secrets, logger: logger}
}

// List renders every submitted secret.
func (h *SecretHandler) List(c echo.Context) error {
	users, err := h.secrets.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	secrets := make([]string, 0, len(users))
	for _, user := range users {
		if user.Secret != nil {
			secrets = append(secrets, *user.Secret)
		}
	}

	return c.Render(http.StatusOK, view.PageSecrets, &view.Page{Title: "Secrets", Secrets: secrets})
}

// ShowSubmit renders the submit form.
func (h *SecretHandler) ShowSubmit(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageSubmit, &view.Page{Title: "Submit"})
}

// Submit stores the secret of the signed-in user.
func (h *SecretHandler) Submit(c echo.Context) error {
	snapshot := deliverycontext.GetSession(c)
	if snapshot == nil {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	err := h.secrets.Submit(c.Request().Context(), &usecase.SubmitSecretInput{
		UserID: snapshot.UserID,
		Secret: req.Secret,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/secrets")
}
