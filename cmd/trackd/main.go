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

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/tracknest/trackd/internal/app"
	"github.com/tracknest/trackd/internal/auth"
	jobmetrics "github.com/tracknest/trackd/internal/jobs"
	"github.com/tracknest/trackd/internal/observability"
	"github.com/tracknest/trackd/internal/platform/cache"
	"github.com/tracknest/trackd/internal/platform/db"
	"github.com/tracknest/trackd/internal/projects"
	"github.com/tracknest/trackd/internal/users"
	"github.com/tracknest/trackd/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, jobs health disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()
	sweepMetrics := jobmetrics.NewMetrics(metrics.Registerer())

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokenIssuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)

	authService := auth.NewService(userService, hasher, tokenIssuer)
	authHandler := auth.NewHandler(logger, authService)

	projectRepo := projects.NewRepository(pool)
	projectService := projects.NewService(projectRepo)
	projectHandler := projects.NewHandler(logger, projectService)

	sweeper := projects.NewSweeper(projectService, logger, sweepMetrics, cfg.SweepInterval)

	var jobHandler *jobs.Handler
	if redisClient != nil {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
		inspector := asynq.NewInspector(redisOpts)
		jobClient, err := jobs.NewClient(redisOpts)
		if err != nil {
			logger.Error("jobs client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, jobClient, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		TokenIssuer:    tokenIssuer,
		AuthHandler:    authHandler,
		ProjectHandler: projectHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		err := sweeper.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
