package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// memoryStats keeps the stats blob in process memory. It is used when no Redis is configured.
type memoryStats struct {
	mu    sync.RWMutex
	stats *entity.Stats
}

func NewMemoryStatsRepository() StatsRepository {
	return &memoryStats{}
}

func (that *memoryStats) Get(_ context.Context) (*entity.Stats, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.stats == nil {
		return nil, apperror.ErrNotFound
	}

	stats := *that.stats
	return &stats, nil
}

func (that *memoryStats) Save(_ context.Context, stats *entity.Stats) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	saved := *stats
	that.stats = &saved

	return nil
}

func (that *memoryStats) Delete(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stats = nil

	return nil
}

type memorySettings struct {
	mu       sync.RWMutex
	settings *entity.Settings
}

func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettings{}
}

func (that *memorySettings) Get(_ context.Context) (*entity.Settings, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.settings == nil {
		return nil, apperror.ErrNotFound
	}

	settings := *that.settings
	return &settings, nil
}

func (that *memorySettings) Save(_ context.Context, settings *entity.Settings) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	saved := *settings
	that.settings = &saved

	return nil
}
