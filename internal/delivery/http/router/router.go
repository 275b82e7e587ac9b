// Package router contains routing for the HTTP delivery.
package router

import (
	"secretwall/internal/delivery/http/middleware"
	"secretwall/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	PageHandler       *handler.PageHandler
	AuthHandler       *handler.AuthHandler
	OAuthHandler      *handler.OAuthHandler
	SecretHandler     *handler.SecretHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	pageHandler       *handler.PageHandler
	authHandler       *handler.AuthHandler
	oauthHandler      *handler.OAuthHandler
	secretHandler     *handler.SecretHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		pageHandler:       params.PageHandler,
		authHandler:       params.AuthHandler,
		oauthHandler:      params.OAuthHandler,
		secretHandler:     params.SecretHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the site routes.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	site := e.Group("", r.sessionMiddleware.Load)
	{
		site.GET("/", r.pageHandler.Home)
		site.GET("/secrets", r.secretHandler.List)
		site.GET("/logout", r.authHandler.Logout)
	}

	// Local accounts
	{
		site.GET("/register", r.authHandler.ShowRegister)
		site.POST("/register", r.authHandler.Register)
		site.GET("/login", r.authHandler.ShowLogin)
		site.POST("/login", r.authHandler.Login)
	}

	// Google sign-in
	oauthGroup := site.Group("/auth/google")
	{
		oauthGroup.GET("", r.oauthHandler.Begin)
		oauthGroup.GET("/secrets", r.oauthHandler.Callback)
	}

	// Pages that require a session
	{
		site.GET("/submit", r.secretHandler.ShowSubmit, r.sessionMiddleware.RequireSession)
		site.POST("/submit", r.secretHandler.Submit, r.sessionMiddleware.RequireSession)
	}
}
