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

const settingsKey = "ticTacToeSettings"

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

type dbSettings struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) SettingsRepository {
	return &dbSettings{
		client: client,
	}
}

func (that *dbSettings) Get(ctx context.Context) (*entity.Settings, error) {
	response, err := that.client.Get(ctx, settingsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings entity.Settings
	if err = json.Unmarshal([]byte(response), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}

func (that *dbSettings) Save(ctx context.Context, settings *entity.Settings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err = that.client.Set(ctx, settingsKey, settingsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}

	return nil
}
