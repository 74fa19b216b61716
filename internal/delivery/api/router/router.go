// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"quizauth/config"
	"quizauth/internal/delivery/api/middleware"
	"quizauth/internal/delivery/api/router/handler"
	"quizauth/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics `optional:"true"`
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	e.POST("/register", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.GET("/verify", r.authHandler.Verify, r.authMiddleware.Authenticate)

	r.registerMetricsRoute(e)
}

func (r *router) registerMetricsRoute(e *echo.Echo) {
	if r.metrics == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
}
