package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var ErrUnknownStorage = errors.New("unknown storage")

type Config struct {
	LogLevel          string        `yaml:"log-level" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env-default:"9091"`
	Storage           string        `yaml:"storage" env-default:"redis"`
	Redis             Redis         `yaml:"redis"`
	AIThinkDelay      time.Duration `yaml:"ai-think-delay" env-default:"600ms"`
	DefaultDifficulty string        `yaml:"default-difficulty" env-default:"medium"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	if _, err := entity.ParseDifficulty(that.DefaultDifficulty); err != nil {
		return err
	}

	if that.AIThinkDelay < 0 {
		return fmt.Errorf("ai-think-delay must not be negative, got %s", that.AIThinkDelay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
