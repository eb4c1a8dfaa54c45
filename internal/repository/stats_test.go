package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

func TestStatsRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// Given: stats after a few matches
	stats := &entity.Stats{
		Scores:     entity.Scores{X: 3, O: 1},
		TotalGames: 5,
		TotalWins:  3,
	}

	// When: Save is called
	err := statsRepo.Save(ctx, stats)

	// Then: no error should be returned and the blob is stored under the stats key
	require.NoError(t, err)

	raw, err := st.Storage.Get(ctx, statsKey).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"scores":{"X":3,"O":1},"totalGames":5,"totalWins":3}`, raw)
}

func TestStatsRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// Given: saved stats
		stats := &entity.Stats{Scores: entity.Scores{X: 1}, TotalGames: 2, TotalWins: 1}
		require.NoError(t, statsRepo.Save(ctx, stats))

		// When: Get is called
		retrieved, err := statsRepo.Get(ctx)

		// Then: the retrieved stats match the saved ones
		require.NoError(t, err)
		assert.Equal(t, stats, retrieved)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// When: Get is called before anything was saved
		retrieved, err := statsRepo.Get(ctx)

		// Then: an ErrNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("Get_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)
		require.NoError(t, st.Storage.Set(ctx, statsKey, "not json", 0).Err())

		_, err := statsRepo.Get(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal stats")
	})
}

func TestStatsRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)
	require.NoError(t, statsRepo.Save(ctx, &entity.Stats{TotalGames: 1}))

	// When: Delete is called
	err := statsRepo.Delete(ctx)

	// Then: the stats are gone
	require.NoError(t, err)

	_, err = statsRepo.Get(ctx)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
