// Package middleware contains the echo middleware specific to the HTML site.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/delivery/http/response"
	"secretwall/internal/delivery/http/view"
	sharedmiddleware "secretwall/internal/delivery/middleware"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders every error returned by a handler.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Browsers get the error page,
// clients asking for JSON get the response envelope.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := sharedmiddleware.StatusOf(err)
	code, message := describe(err, status)

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
	} else {
		logger.Debug("Request rejected", slog.Any("error", err), slog.Int("status", status))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}

	if wantsJSON(c.Request()) {
		_ = response.Error(c, status, code, message)

		return
	}

	page := &view.Page{
		Title: http.StatusText(status),
		Error: &view.ErrorView{Status: status, Message: message},
	}
	if renderErr := c.Render(status, view.PageError, page); renderErr != nil {
		logger.Error("Failed to render error page", slog.Any("error", renderErr))
		_ = c.String(status, message)
	}
}

// describe returns the business code and the user-facing message of err.
// Internal failures never leak their cause to the client.
func describe(err error, status int) (string, string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && status < http.StatusInternalServerError {
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			return "HTTP_ERROR", msg
		}

		return "HTTP_ERROR", http.StatusText(status)
	}

	return domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message()
}

func wantsJSON(req *http.Request) bool {
	accept := req.Header.Get(echo.HeaderAccept)

	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
