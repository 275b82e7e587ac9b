package middleware

import (
	"net/http"

	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"

	"github.com/labstack/echo/v4"
)

// StatusOf maps a handler error to the HTTP status it is rendered with.
func StatusOf(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
