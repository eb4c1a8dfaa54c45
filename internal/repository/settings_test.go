package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

func TestSettingsRepository_SaveAndGet(t *testing.T) {
	ctx, st := suite.New(t)

	settingsRepo := NewSettingsRepository(st.Storage)

	// Given: sound switched off
	settings := &entity.Settings{SoundEnabled: false}

	// When: the settings are saved and read back
	require.NoError(t, settingsRepo.Save(ctx, settings))
	retrieved, err := settingsRepo.Get(ctx)

	// Then: the stored blob matches
	require.NoError(t, err)
	assert.Equal(t, settings, retrieved)

	raw, err := st.Storage.Get(ctx, settingsKey).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"soundEnabled":false}`, raw)
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	settingsRepo := NewSettingsRepository(st.Storage)

	retrieved, err := settingsRepo.Get(ctx)

	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, retrieved)
}
