package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the REST routes.
func NewRouter(logger *slog.Logger, profile profileManager) http.Handler {
	handler := newHandlers(logger, profile)

	router := chi.NewRouter()
	router.Get("/ping", handler.Ping)

	router.Get("/stats", handler.GetStats)
	router.Delete("/stats", handler.ResetStats)
	router.Get("/settings", handler.GetSettings)
	router.Put("/settings", handler.SaveSettings)
	router.Post("/settings/sound/toggle", handler.ToggleSound)

	return router
}

// Start serves handler on port until ctx is cancelled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
