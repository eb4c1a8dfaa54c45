package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestRouter(t *testing.T) (http.Handler, *usecase.ProfileManager) {
	t.Helper()

	profile := usecase.NewProfileManager(testLogger,
		repository.NewMemoryStatsRepository(),
		repository.NewMemorySettingsRepository(),
	)

	return NewRouter(testLogger, profile), profile
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, reader))

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&value))

	return value
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := serve(t, router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestStats(t *testing.T) {
	t.Run("Returns zero stats before any game", func(t *testing.T) {
		router, _ := newTestRouter(t)

		recorder := serve(t, router, http.MethodGet, "/stats", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"scores":{"X":0,"O":0},"totalGames":0,"totalWins":0}`, recorder.Body.String())
	})

	t.Run("Returns saved stats and resets them", func(t *testing.T) {
		// Given: saved stats
		router, profile := newTestRouter(t)
		saved := entity.Stats{Scores: entity.Scores{X: 2, O: 1}, TotalGames: 4, TotalWins: 2}
		require.NoError(t, profile.SaveStats(context.Background(), saved))

		// When: they are read and then reset
		got := decode[entity.Stats](t, serve(t, router, http.MethodGet, "/stats", ""))
		reset := serve(t, router, http.MethodDelete, "/stats", "")

		// Then: the reset clears them
		assert.Equal(t, saved, got)
		require.Equal(t, http.StatusOK, reset.Code)
		assert.Equal(t, entity.Stats{}, decode[entity.Stats](t, reset))
		assert.Equal(t, entity.Stats{}, decode[entity.Stats](t, serve(t, router, http.MethodGet, "/stats", "")))
	})
}

func TestSettings(t *testing.T) {
	t.Run("Sound is enabled by default", func(t *testing.T) {
		router, _ := newTestRouter(t)

		recorder := serve(t, router, http.MethodGet, "/settings", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"soundEnabled":true}`, recorder.Body.String())
	})

	t.Run("Saves settings", func(t *testing.T) {
		router, _ := newTestRouter(t)

		recorder := serve(t, router, http.MethodPut, "/settings", `{"soundEnabled":false}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, entity.Settings{SoundEnabled: false}, decode[entity.Settings](t, serve(t, router, http.MethodGet, "/settings", "")))
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)

		recorder := serve(t, router, http.MethodPut, "/settings", `{"soundEnabled":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Toggles sound", func(t *testing.T) {
		router, _ := newTestRouter(t)

		first := decode[entity.Settings](t, serve(t, router, http.MethodPost, "/settings/sound/toggle", ""))
		second := decode[entity.Settings](t, serve(t, router, http.MethodPost, "/settings/sound/toggle", ""))

		assert.False(t, first.SoundEnabled)
		assert.True(t, second.SoundEnabled)
	})
}

type failingProfile struct{}

var errStorage = errors.New("storage unavailable")

func (failingProfile) Stats(context.Context) (entity.Stats, error) {
	return entity.Stats{}, errStorage
}

func (failingProfile) ResetStats(context.Context) (entity.Stats, error) {
	return entity.Stats{}, errStorage
}

func (failingProfile) Settings(context.Context) (entity.Settings, error) {
	return entity.Settings{}, errStorage
}

func (failingProfile) SaveSettings(context.Context, entity.Settings) error {
	return errStorage
}

func (failingProfile) ToggleSound(context.Context) (entity.Settings, error) {
	return entity.Settings{}, errStorage
}

func TestStorageFailures(t *testing.T) {
	router := NewRouter(testLogger, failingProfile{})

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/stats", ""},
		{http.MethodDelete, "/stats", ""},
		{http.MethodGet, "/settings", ""},
		{http.MethodPut, "/settings", `{"soundEnabled":true}`},
		{http.MethodPost, "/settings/sound/toggle", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			recorder := serve(t, router, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"error"`)
		})
	}
}
