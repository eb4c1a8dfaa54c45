package suite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// redisAddrEnv points the suite at a running Redis instead of a container.
const redisAddrEnv = "TEST_REDIS_ADDR"

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New returns an empty Redis for the test. The test is skipped in short mode or when neither
// TEST_REDIS_ADDR nor a Docker daemon is available.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis suite in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	var redisStorage *storage.RedisStorage
	if addr := os.Getenv(redisAddrEnv); addr != "" {
		redisStorage = connect(ctx, t, addr)
	} else {
		redisStorage = startContainer(ctx, t)
	}

	t.Cleanup(func() {
		_ = redisStorage.Close()
	})

	if err := redisStorage.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Storage: redisStorage.Connection,
	}
}

func connect(ctx context.Context, t *testing.T, addr string) *storage.RedisStorage {
	t.Helper()

	redisStorage, err := storage.NewRedisStorage(ctx, addr)
	if err != nil {
		t.Fatalf("could not connect to redis at %s: %v", addr, err)
	}

	return redisStorage
}

func startContainer(ctx context.Context, t *testing.T) *storage.RedisStorage {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	// hard kill after expireDuration seconds even if cleanup never runs
	_ = resource.Expire(expireDuration)

	pool.MaxWait = maxWaitDuration

	var redisStorage *storage.RedisStorage
	if err = pool.Retry(func() error {
		redisStorage, err = storage.NewRedisStorage(ctx, resource.GetHostPort(redisPort))
		return err
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	return redisStorage
}
