package handler

import (
	"net/http"

	"secretwall/internal/delivery/http/response"
	"secretwall/internal/delivery/http/view"

	"github.com/labstack/echo/v4"
)

// PageHandler serves static pages.
type PageHandler struct{}

// NewPageHandler is the constructor for PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home renders the landing page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageHome, &view.Page{})
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
