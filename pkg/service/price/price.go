// Package price serves coin prices from an external feed through a cache.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/pkg/cache"
	"github.com/amirasaad/invest/pkg/domain"
	"golang.org/x/sync/singleflight"
)

const (
	freshKey = "prices:fresh"
	lastKey  = "prices:last"
	// lastTTL bounds how old a fallback snapshot may be.
	lastTTL = 24 * time.Hour
)

// Provider fetches USD prices keyed by coin id.
type Provider interface {
	FetchPrices(ctx context.Context, coins []string) (map[string]float64, error)
}

// Snapshot is one set of prices.
type Snapshot struct {
	Prices    map[string]float64 `json:"prices"`
	UpdatedAt time.Time          `json:"updated_at"`
	Stale     bool               `json:"stale"`
}

type Service struct {
	provider Provider
	store    cache.Store
	coins    []string
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
	now      func() time.Time
}

func New(provider Provider, store cache.Store, coins []string, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		coins:    coins,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Prices returns cached prices while they are fresh. Concurrent misses share
// one upstream call. If the upstream fails the last snapshot is served
// marked stale; with none, ErrUpstreamUnavailable is returned.
func (s *Service) Prices(ctx context.Context) (*Snapshot, error) {
	if snap, ok := s.load(ctx, freshKey); ok {
		return snap, nil
	}
	v, err, _ := s.group.Do(freshKey, func() (any, error) {
		return s.refresh(ctx)
	})
	if err == nil {
		return v.(*Snapshot), nil
	}
	s.logger.Warn("price feed failed", "error", err)
	if snap, ok := s.load(ctx, lastKey); ok {
		snap.Stale = true
		return snap, nil
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
}

func (s *Service) refresh(ctx context.Context) (*Snapshot, error) {
	prices, err := s.provider.FetchPrices(ctx, s.coins)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Prices: prices, UpdatedAt: s.now()}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, freshKey, raw, s.ttl); err != nil {
		s.logger.Warn("price cache write failed", "error", err)
	}
	if err := s.store.Set(ctx, lastKey, raw, lastTTL); err != nil {
		s.logger.Warn("price cache write failed", "error", err)
	}
	return snap, nil
}

func (s *Service) load(ctx context.Context, key string) (*Snapshot, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("price cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}
