package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	middleware "task-manager-api.com/task-manager-api/internal/http/middlewares"
)

type RouteConfig struct {
	RateLimitPerMinute     int
	AuthRateLimitPerMinute int
	Now                    func() time.Time
}

func Register(
	e *echo.Echo,
	h *Handler,
	authHandler *AuthHandler,
	health *HealthHandler,
	authenticator middleware.Authenticator,
	cfg RouteConfig,
) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())

	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.RateLimiter("api", cfg.RateLimitPerMinute, time.Minute, middleware.KeyByIP, cfg.Now))
	requireAuth := middleware.RequireAuth(authenticator)

	authGroup := api.Group("/auth", middleware.RateLimiter("auth", cfg.AuthRateLimitPerMinute, time.Minute, middleware.KeyByIP, cfg.Now))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, requireAuth)

	users := api.Group("/users", requireAuth)
	users.GET("/me", authHandler.Me)
	users.PATCH("/me", authHandler.UpdateMe)
	users.DELETE("/me", authHandler.DeleteMe)

	tasks := api.Group("/tasks", requireAuth, middleware.RateLimiter("tasks", cfg.RateLimitPerMinute, time.Minute, middleware.KeyByCaller, cfg.Now))
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/sort/:field", h.ListTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.PUT("/:id/extend-due-date", h.ExtendDueDate)
}
