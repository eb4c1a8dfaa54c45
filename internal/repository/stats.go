package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const statsKey = "ticTacToeStats"

type StatsRepository interface {
	Get(ctx context.Context) (*entity.Stats, error)
	Save(ctx context.Context, stats *entity.Stats) error
	Delete(ctx context.Context) error
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) Get(ctx context.Context) (*entity.Stats, error) {
	response, err := that.client.Get(ctx, statsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	var stats entity.Stats
	if err = json.Unmarshal([]byte(response), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return &stats, nil
}

func (that *dbStats) Save(ctx context.Context, stats *entity.Stats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err = that.client.Set(ctx, statsKey, statsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}

	return nil
}

func (that *dbStats) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("failed to delete stats: %w", err)
	}

	return nil
}
