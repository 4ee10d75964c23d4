// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vyapkart/config"
	"vyapkart/internal/delivery/api/middleware"
	"vyapkart/internal/delivery/api/router/handler"
	"vyapkart/internal/domain/entity"
	"vyapkart/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Recorder
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Recorder
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/firebase-login", r.authHandler.FirebaseLogin)
	}

	// /auth routes carry identity tokens, not session credentials, so they are not authenticated.
	accountsGroup := e.Group("/accounts")
	accountsGroup.Use(r.authMiddleware.Authenticate)
	accountsGroup.Use(r.authMiddleware.RequireAuth)
	{
		accountsGroup.GET("/me", r.accountHandler.GetMe)
		accountsGroup.GET("/me/seller", r.accountHandler.GetMySellerProfile, r.authMiddleware.RequireRole(entity.RoleSeller))
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if !metrics.Enabled(r.config) {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
}
