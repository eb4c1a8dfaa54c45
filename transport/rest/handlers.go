package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type profileManager interface {
	Stats(ctx context.Context) (entity.Stats, error)
	ResetStats(ctx context.Context) (entity.Stats, error)
	Settings(ctx context.Context) (entity.Settings, error)
	SaveSettings(ctx context.Context, settings entity.Settings) error
	ToggleSound(ctx context.Context) (entity.Settings, error)
}

type handlers struct {
	logger  *slog.Logger
	profile profileManager
}

type errorResponse struct {
	Error string `json:"error"`
}

func newHandlers(logger *slog.Logger, profile profileManager) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		profile: profile,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetStats")

	stats, err := that.profile.Stats(r.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get stats"})
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) ResetStats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ResetStats")

	stats, err := that.profile.ResetStats(r.Context())
	if err != nil {
		log.Error("failed to reset stats", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset stats"})
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetSettings")

	settings, err := that.profile.Settings(r.Context())
	if err != nil {
		log.Error("failed to get settings", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
		return
	}

	that.writeJSON(w, http.StatusOK, settings)
}

func (that *handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SaveSettings")

	var settings entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Debug("invalid settings body", "error", err)
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid settings"})
		return
	}

	if err := that.profile.SaveSettings(r.Context(), settings); err != nil {
		log.Error("failed to save settings", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
		return
	}

	that.writeJSON(w, http.StatusOK, settings)
}

func (that *handlers) ToggleSound(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ToggleSound")

	settings, err := that.profile.ToggleSound(r.Context())
	if err != nil {
		log.Error("failed to toggle sound", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to toggle sound"})
		return
	}

	that.writeJSON(w, http.StatusOK, settings)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
