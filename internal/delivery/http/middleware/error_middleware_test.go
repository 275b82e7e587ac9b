package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"secretwall/internal/delivery/http/view"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	return e
}

func TestErrorMiddleware_RendersErrorPage(t *testing.T) {
	e := newErrorTestEcho(t)
	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/register", nil), rec)
	mw.HandleHTTPError(errors.Wrap(domainerrors.ErrDuplicateUsername, "register"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "That username is already taken")
}

func TestErrorMiddleware_HidesInternalErrors(t *testing.T) {
	e := newErrorTestEcho(t)
	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/secrets", nil), rec)
	mw.HandleHTTPError(errors.New("connection refused to 10.0.0.5"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestErrorMiddleware_JSONClients(t *testing.T) {
	e := newErrorTestEcho(t)
	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	mw.HandleHTTPError(domainerrors.ErrNotAuthenticated, e.NewContext(req, rec))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_AUTHENTICATED"`)
}

func TestErrorMiddleware_HeadRequests(t *testing.T) {
	e := newErrorTestEcho(t)
	mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	mw.HandleHTTPError(echo.ErrNotFound, e.NewContext(httptest.NewRequest(http.MethodHead, "/x", nil), rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
