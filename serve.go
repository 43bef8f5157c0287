package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/handlers"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/router"
	"github.com/danielhkuo/giftquiz/session"
	"github.com/danielhkuo/giftquiz/storage"
	"github.com/danielhkuo/giftquiz/views"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	store, err := storage.Open(cfg.StorageType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	slog.Info("storage ready", "type", cfg.StorageType)

	// A failed load leaves the server up in the failed state.
	src := catalogSource(cfg)
	app := handlers.NewApp(func(ctx context.Context) (*catalog.Catalog, error) {
		return catalog.Load(ctx, src)
	})
	_ = app.Load(ctx)

	renderer, err := views.New()
	if err != nil {
		store.Close()
		return err
	}

	sessions := session.NewManager(store, models.TotalQuestions, cfg.PersistDelay)
	mux := router.NewRouter(app, sessions, store, renderer, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Drain requests first so no answer arrives after the flush.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	pending := sessions.Pending()
	sessions.Flush()
	slog.Info("pending saves flushed", "count", pending)

	if err := store.Close(); err != nil {
		slog.Error("storage close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
