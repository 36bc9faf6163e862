package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jobsapi/jobs-api-go/internal/config"
	"github.com/jobsapi/jobs-api-go/internal/crypto"
	"github.com/jobsapi/jobs-api-go/internal/handler"
	"github.com/jobsapi/jobs-api-go/internal/middleware"
	"github.com/jobsapi/jobs-api-go/internal/repository"
	"github.com/jobsapi/jobs-api-go/internal/repository/memory"
	"github.com/jobsapi/jobs-api-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Env)

	users, jobs, closeStore, err := openStores(cfg)
	if err != nil {
		slog.Error("storage unavailable", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	hasher, err := crypto.NewHasher(cfg.BcryptCost)
	if err != nil {
		slog.Error("invalid bcrypt cost", "cost", cfg.BcryptCost, "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(users, hasher, cfg.JWTSecret, cfg.JWTExpiry)
	jobService := service.NewJobService(jobs)

	rateLimit, stopRateLimit := middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow)
	defer stopRateLimit()

	var checker middleware.UserChecker
	if cfg.AuthCheckUser {
		checker = authService
	}

	router := handler.NewRouter(handler.RouterConfig{
		Auth:               handler.NewAuthHandler(authService),
		Jobs:               handler.NewJobHandler(jobService),
		JWTSecret:          cfg.JWTSecret,
		UserChecker:        checker,
		RateLimit:          rateLimit,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		TrustProxy:         cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return
	}

	slog.Info("server stopped")
}

func setupLogger(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if env == "production" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openStores returns the user and job stores for the configured driver.
func openStores(cfg config.Config) (service.UserStore, service.JobStore, func(), error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		return memory.NewUserRepository(), memory.NewJobRepository(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}
	return repository.NewUserRepository(db), repository.NewJobRepository(db), closeDB, nil
}
