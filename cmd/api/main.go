package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/api"
	"github.com/fintrackhq/fintrack-backend/internal/auth"
	"github.com/fintrackhq/fintrack-backend/internal/config"
	"github.com/fintrackhq/fintrack-backend/internal/db"
	"github.com/fintrackhq/fintrack-backend/internal/logger"
	"github.com/fintrackhq/fintrack-backend/internal/metrics"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/fintrackhq/fintrack-backend/internal/repository/postgres"
	"github.com/fintrackhq/fintrack-backend/internal/services"
	"github.com/fintrackhq/fintrack-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	authSvc := services.NewAuthService(repos.Tx, repos.Users, repos.Tokens, repos.Ledger, tm)
	ledgerSvc := services.NewLedgerService(repos.Tx, repos.Ledger, repos.AuditLogs, wp)
	analyticsSvc := services.NewAnalyticsService(repos.Analytics)
	goalSvc := services.NewGoalService(repos.Goals)
	categorySvc := services.NewCategoryService(repos.Categories)
	glossarySvc := services.NewGlossaryService(repos.Glossary)

	sweeper := worker.NewSweeper(repos.Tokens, log)
	go sweeper.Run(ctx)

	r := api.NewRouter(api.Deps{
		Cfg:       cfg,
		AuthMW:    middleware.NewAuthMiddleware(tm),
		Auth:      authSvc,
		Ledger:    ledgerSvc,
		Analytics: analyticsSvc,
		Goals:     goalSvc,
		Category:  categorySvc,
		Glossary:  glossarySvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
