package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/infra"
	infra_cache "github.com/amirasaad/invest/infra/cache"
	infra_eventbus "github.com/amirasaad/invest/infra/eventbus"
	infra_mail "github.com/amirasaad/invest/infra/mail"
	infra_provider "github.com/amirasaad/invest/infra/provider"
	infra_repository "github.com/amirasaad/invest/infra/repository"
	infra_storage "github.com/amirasaad/invest/infra/storage"
	"github.com/amirasaad/invest/pkg/app"
	"github.com/amirasaad/invest/pkg/cache"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/service/auth"
)

// InitializeDependencies initializes all the application dependencies.
// The returned closers release network resources on shutdown.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	closers []io.Closer,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	deps.Uow = infra_repository.NewUoW(db)

	store, closer := initCache(ctx, cfg, logger)
	deps.Cache = store
	if closer != nil {
		closers = append(closers, closer)
	}

	bus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, closers, err
	}
	deps.EventBus = bus
	if c, ok := bus.(io.Closer); ok {
		closers = append(closers, c)
	}

	serverURL := fmt.Sprintf("%s://%s:%d", cfg.Server.Scheme, cfg.Server.Host, cfg.Server.Port)
	deps.Storage, err = infra_storage.New(ctx, cfg.Upload, serverURL)
	if err != nil {
		return nil, closers, fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	deps.Mailer = infra_mail.New(cfg.SMTP, logger)
	deps.Captcha = initCaptcha(cfg, logger)
	deps.Prices = infra_provider.NewCoinGeckoProvider(cfg.PriceFeed, logger)
	return deps, closers, nil
}

// initCache prefers redis and falls back to the in-process cache when
// redis is unset or unreachable.
func initCache(ctx context.Context, cfg *config.App, logger *slog.Logger) (cache.Store, io.Closer) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Using in-memory cache")
		return infra_cache.NewMemoryCache(), nil
	}
	rc, err := infra_cache.NewRedisCache(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
		return infra_cache.NewMemoryCache(), nil
	}
	return rc, rc
}

// initEventBus uses kafka when brokers are configured. A broker that cannot
// be reached falls back to the in-process bus.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
		return infra_eventbus.NewWithMemory(logger), nil
	}
	bus, err := infra_eventbus.NewWithKafka(cfg.Kafka, logger)
	if err != nil {
		logger.Warn("Kafka unavailable, falling back to in-memory event bus", "error", err)
		return infra_eventbus.NewWithMemory(logger), nil
	}
	return bus, nil
}

// initCaptcha returns nil when no secret is configured so signup skips the
// check entirely.
func initCaptcha(cfg *config.App, logger *slog.Logger) auth.CaptchaVerifier {
	if cfg.Captcha == nil || cfg.Captcha.Secret == "" {
		return nil
	}
	return infra_provider.NewRecaptchaVerifier(cfg.Captcha, logger)
}
