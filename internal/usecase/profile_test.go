package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errRedisDown = errors.New("redis down")

type mockStatsRepo struct {
	mock.Mock
}

func (that *mockStatsRepo) Get(ctx context.Context) (*entity.Stats, error) {
	args := that.Called(ctx)
	stats, _ := args.Get(0).(*entity.Stats)
	return stats, args.Error(1)
}

func (that *mockStatsRepo) Save(ctx context.Context, stats *entity.Stats) error {
	return that.Called(ctx, stats).Error(0)
}

func (that *mockStatsRepo) Delete(ctx context.Context) error {
	return that.Called(ctx).Error(0)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (that *mockSettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	args := that.Called(ctx)
	settings, _ := args.Get(0).(*entity.Settings)
	return settings, args.Error(1)
}

func (that *mockSettingsRepo) Save(ctx context.Context, settings *entity.Settings) error {
	return that.Called(ctx, settings).Error(0)
}

func newTestProfileManager(t *testing.T) (*ProfileManager, *mockStatsRepo, *mockSettingsRepo) {
	t.Helper()

	statsRepo := &mockStatsRepo{}
	settingsRepo := &mockSettingsRepo{}
	t.Cleanup(func() {
		statsRepo.AssertExpectations(t)
		settingsRepo.AssertExpectations(t)
	})

	return NewProfileManager(testLogger, statsRepo, settingsRepo), statsRepo, settingsRepo
}

func TestProfileManager_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns saved stats", func(t *testing.T) {
		// Given: a repository holding stats
		manager, statsRepo, _ := newTestProfileManager(t)
		saved := &entity.Stats{Scores: entity.Scores{X: 2}, TotalGames: 3, TotalWins: 2}
		statsRepo.On("Get", mock.Anything).Return(saved, nil).Once()

		// When: reading the stats
		stats, err := manager.Stats(ctx)

		// Then: the saved value is returned
		require.NoError(t, err)
		assert.Equal(t, *saved, stats)
	})

	t.Run("Returns zero stats when nothing is saved", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Get", mock.Anything).Return(nil, apperror.ErrNotFound).Once()

		stats, err := manager.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.Stats{}, stats)
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Get", mock.Anything).Return(nil, errRedisDown).Once()

		_, err := manager.Stats(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestProfileManager_SaveAndResetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the stats blob", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		stats := entity.Stats{Scores: entity.Scores{O: 1}, TotalGames: 1}
		statsRepo.On("Save", mock.Anything, &stats).Return(nil).Once()

		require.NoError(t, manager.SaveStats(ctx, stats))
	})

	t.Run("Reset deletes the blob", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Delete", mock.Anything).Return(nil).Once()

		stats, err := manager.ResetStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.Stats{}, stats)
	})

	t.Run("Reset returns storage errors", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Delete", mock.Anything).Return(errRedisDown).Once()

		_, err := manager.ResetStats(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestProfileManager_RecordOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds the outcome to the stored stats", func(t *testing.T) {
		// Given: stored stats
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Get", mock.Anything).Return(&entity.Stats{Scores: entity.Scores{X: 1}, TotalGames: 2, TotalWins: 1}, nil).Once()
		expected := entity.Stats{Scores: entity.Scores{X: 1, O: 1}, TotalGames: 3, TotalWins: 1}
		statsRepo.On("Save", mock.Anything, &expected).Return(nil).Once()

		// When: the opponent wins a match
		stats, err := manager.RecordOutcome(ctx, entity.Outcome{Winner: entity.PlayerO})

		// Then: the increment is saved on top of the stored value
		require.NoError(t, err)
		assert.Equal(t, expected, stats)
	})

	t.Run("Starts from zero when nothing is saved", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Get", mock.Anything).Return(nil, apperror.ErrNotFound).Once()
		statsRepo.On("Save", mock.Anything, &entity.Stats{TotalGames: 1}).Return(nil).Once()

		stats, err := manager.RecordOutcome(ctx, entity.Outcome{Winner: entity.PlayerTie})

		require.NoError(t, err)
		assert.Equal(t, entity.Stats{TotalGames: 1}, stats)
	})

	t.Run("Does not save when reading fails", func(t *testing.T) {
		manager, statsRepo, _ := newTestProfileManager(t)
		statsRepo.On("Get", mock.Anything).Return(nil, errRedisDown).Once()

		_, err := manager.RecordOutcome(ctx, entity.Outcome{Winner: entity.PlayerX})

		require.ErrorIs(t, err, errRedisDown)
		statsRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProfileManager_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to sound on", func(t *testing.T) {
		manager, _, settingsRepo := newTestProfileManager(t)
		settingsRepo.On("Get", mock.Anything).Return(nil, apperror.ErrNotFound).Once()

		settings, err := manager.Settings(ctx)

		require.NoError(t, err)
		assert.True(t, settings.SoundEnabled)
	})

	t.Run("Toggle flips and saves the sound flag", func(t *testing.T) {
		// Given: sound is enabled
		manager, _, settingsRepo := newTestProfileManager(t)
		settingsRepo.On("Get", mock.Anything).Return(&entity.Settings{SoundEnabled: true}, nil).Once()
		settingsRepo.On("Save", mock.Anything, &entity.Settings{SoundEnabled: false}).Return(nil).Once()

		// When: toggling the sound
		settings, err := manager.ToggleSound(ctx)

		// Then: it is switched off
		require.NoError(t, err)
		assert.False(t, settings.SoundEnabled)
	})

	t.Run("Toggle does not save when reading fails", func(t *testing.T) {
		manager, _, settingsRepo := newTestProfileManager(t)
		settingsRepo.On("Get", mock.Anything).Return(nil, errRedisDown).Once()

		_, err := manager.ToggleSound(ctx)

		require.ErrorIs(t, err, errRedisDown)
		settingsRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
