package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/leanflow/leanflow-go/internal/config"
	"github.com/leanflow/leanflow-go/internal/routes"
	"github.com/leanflow/leanflow-go/internal/supabase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// The store client is constructed lazily on first use; a missing
	// SUPABASE_URL/key surfaces as a 500 on the first data request, not here.
	store := supabase.NewLazy(cfg.SupabaseURL, cfg.SupabaseKey)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.New(store),
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		os.Exit(1)
	}

	slog.Info("server stopped")
}
