package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sumire/issuetracker/internal/config"
	"github.com/sumire/issuetracker/internal/handler"
	"github.com/sumire/issuetracker/internal/repository"
	"github.com/sumire/issuetracker/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(cfg.Logger(os.Stderr))

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.Open(connectCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancelConnect()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	slog.Info("database connected", "driver", cfg.DatabaseDriver)

	issueRepo := repository.NewIssueRepository(db)
	issueSvc := service.NewIssueService(issueRepo)

	e := handler.NewRouter(issueSvc, issueRepo, handler.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
