package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"task-manager-api.com/task-manager-api/internal/auth"
	"task-manager-api.com/task-manager-api/internal/clock"
	config "task-manager-api.com/task-manager-api/internal/configs"
	httpapi "task-manager-api.com/task-manager-api/internal/http"
	"task-manager-api.com/task-manager-api/internal/logger"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
	"task-manager-api.com/task-manager-api/internal/services"
	"task-manager-api.com/task-manager-api/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task manager HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger.Init(cfg.LogLevel, cfg.LogPretty)

		database := config.NewDatabaseClient(cfg.DatabaseDSN)
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		clk := clock.Real{}
		checks := map[string]httpapi.HealthCheck{
			"database": sqlDB.PingContext,
		}

		var store sessions.Store
		switch cfg.SessionStore {
		case config.SessionStoreRedis:
			client := config.NewRedisClient(cfg)
			defer client.Close()
			redisStore := sessions.NewRedisStore(client, cfg.SessionKeyPrefix)
			checks["sessions"] = redisStore.Ping
			store = redisStore
		default:
			store = sessions.NewMemoryStore(clk.Now)
		}

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)

		hasher := auth.NewPasswordHasher(cfg.BcryptCost)
		tokens := auth.NewJWTManager(auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			TTL:       time.Duration(cfg.JWTTTLMinutes) * time.Minute,
			Issuer:    "task-manager",
		}, clk.Now)

		taskService := services.NewTaskService(taskRepo, clk)
		authService := services.NewAuthService(userRepo, hasher, tokens, store, clk, cfg.DefaultTimezone)
		userService := services.NewUserService(userRepo, taskRepo, hasher, store, clk)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(
			e,
			httpapi.NewHandler(taskService),
			httpapi.NewAuthHandler(authService, userService),
			httpapi.NewHealthHandler(checks),
			authService,
			httpapi.RouteConfig{
				RateLimitPerMinute:     cfg.RateLimit,
				AuthRateLimitPerMinute: cfg.AuthRateLimit,
				Now:                    clk.Now,
			},
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Info().Str("addr", cfg.AppURL).Str("sessions", cfg.SessionStore).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
			return err
		}

		log.Info().Msg("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
