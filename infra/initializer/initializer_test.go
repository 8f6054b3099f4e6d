package initializer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	infra_cache "github.com/amirasaad/invest/infra/cache"
	infra_eventbus "github.com/amirasaad/invest/infra/eventbus"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitEventBus_DefaultsToMemoryWithoutBrokers(t *testing.T) {
	bus, err := initEventBus(&config.App{Kafka: &config.Kafka{}}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitEventBus_KafkaConnectionErrorFallsBackToMemory(t *testing.T) {
	cfg := &config.App{Kafka: &config.Kafka{Brokers: "127.0.0.1:1", GroupID: "test"}}
	bus, err := initEventBus(cfg, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, bus)
}

func TestInitCache(t *testing.T) {
	ctx := context.Background()

	t.Run("memory without url", func(t *testing.T) {
		store, closer := initCache(ctx, &config.App{Redis: &config.Redis{}}, discardLogger())
		assert.IsType(t, &infra_cache.MemoryCache{}, store)
		assert.Nil(t, closer)
	})

	t.Run("redis when reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.App{Redis: &config.Redis{URL: "redis://" + mr.Addr(), KeyPrefix: "t:", PoolSize: 2}}
		store, closer := initCache(ctx, cfg, discardLogger())
		require.NotNil(t, closer)
		defer closer.Close()
		assert.IsType(t, &infra_cache.RedisCache{}, store)
	})

	t.Run("fallback when unreachable", func(t *testing.T) {
		cfg := &config.App{Redis: &config.Redis{URL: "redis://127.0.0.1:1"}}
		store, closer := initCache(ctx, cfg, discardLogger())
		assert.IsType(t, &infra_cache.MemoryCache{}, store)
		assert.Nil(t, closer)
	})
}

func TestInitCaptcha_DisabledWithoutSecret(t *testing.T) {
	assert.Nil(t, initCaptcha(&config.App{Captcha: &config.Captcha{}}, discardLogger()))
	assert.NotNil(t, initCaptcha(&config.App{Captcha: &config.Captcha{Secret: "s"}}, discardLogger()))
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	path := t.TempDir() + "/app.log"
	logger := setupLogger(&config.Log{Format: "json", File: path, MaxSizeMB: 1})
	logger.Info("hello")
	assert.FileExists(t, path)
}
