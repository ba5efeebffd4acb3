// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/frontend/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/frontend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	viewController     *controller.ViewController
	categoryController *controller.CategoryController
	loginRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	viewController *controller.ViewController,
	categoryController *controller.CategoryController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		viewController:     viewController,
		categoryController: categoryController,
		loginRateLimiter:   loginRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}
	}

	if r.viewController != nil && r.authMiddleware != nil {
		views := v1.Group("/views/:view")
		views.Use(r.authMiddleware.Authenticate())
		{
			views.GET("", r.viewController.Get)
			views.PUT("/filters/:field", r.viewController.SetFilter)
			views.DELETE("/filters", r.viewController.ClearFilters)
			views.PUT("/range/:preset", r.viewController.SetRange)
			views.PUT("/sort", r.viewController.SetSort)
			views.PUT("/page", r.viewController.SetPage)
			views.PUT("/page-size", r.viewController.SetPageSize)
			views.POST("/refresh", r.viewController.Refresh)
		}
	}

	if r.categoryController != nil && r.authMiddleware != nil {
		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.GET("/:id", r.categoryController.Get)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
