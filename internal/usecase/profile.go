package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type statsRepo interface {
	Get(ctx context.Context) (*entity.Stats, error)
	Save(ctx context.Context, stats *entity.Stats) error
	Delete(ctx context.Context) error
}

type settingsRepo interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

// ProfileManager owns the persisted statistics and settings blobs.
type ProfileManager struct {
	logger       *slog.Logger
	statsRepo    statsRepo
	settingsRepo settingsRepo

	// statsMu serializes read-modify-write of the stats blob.
	statsMu sync.Mutex
}

func NewProfileManager(logger *slog.Logger, statsRepo statsRepo, settingsRepo settingsRepo) *ProfileManager {
	return &ProfileManager{
		logger: logger.With("component", "profile"),

		statsRepo:    statsRepo,
		settingsRepo: settingsRepo,
	}
}

// Stats returns zero stats when nothing was saved yet.
func (that *ProfileManager) Stats(ctx context.Context) (entity.Stats, error) {
	stats, err := that.statsRepo.Get(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		return entity.Stats{}, nil
	}

	if err != nil {
		return entity.Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return *stats, nil
}

func (that *ProfileManager) SaveStats(ctx context.Context, stats entity.Stats) error {
	if err := that.statsRepo.Save(ctx, &stats); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	return nil
}

// RecordOutcome adds a finished match to the stored stats and returns the saved value.
func (that *ProfileManager) RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.Stats, error) {
	that.statsMu.Lock()
	defer that.statsMu.Unlock()

	stats, err := that.Stats(ctx)
	if err != nil {
		return entity.Stats{}, err
	}

	stats.Record(outcome)

	if err = that.SaveStats(ctx, stats); err != nil {
		return entity.Stats{}, err
	}

	return stats, nil
}

func (that *ProfileManager) ResetStats(ctx context.Context) (entity.Stats, error) {
	that.statsMu.Lock()
	defer that.statsMu.Unlock()

	if err := that.statsRepo.Delete(ctx); err != nil {
		return entity.Stats{}, fmt.Errorf("failed to reset stats: %w", err)
	}

	that.logger.Info("stats reset")

	return entity.Stats{}, nil
}

// Settings returns the defaults when nothing was saved yet.
func (that *ProfileManager) Settings(ctx context.Context) (entity.Settings, error) {
	settings, err := that.settingsRepo.Get(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		return entity.DefaultSettings(), nil
	}

	if err != nil {
		return entity.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return *settings, nil
}

func (that *ProfileManager) SaveSettings(ctx context.Context, settings entity.Settings) error {
	if err := that.settingsRepo.Save(ctx, &settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// ToggleSound flips the sound setting and returns the saved value.
func (that *ProfileManager) ToggleSound(ctx context.Context) (entity.Settings, error) {
	settings, err := that.Settings(ctx)
	if err != nil {
		return entity.Settings{}, err
	}

	settings.SoundEnabled = !settings.SoundEnabled

	if err = that.SaveSettings(ctx, settings); err != nil {
		return entity.Settings{}, err
	}

	return settings, nil
}
