package cache

import (
	"context"
	"time"

	"github.com/amirasaad/invest/pkg/utils"
)

// Store is a byte-valued cache with per-key expiry.
type Store interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TokenDenylist remembers revoked JWTs until they would have expired anyway.
type TokenDenylist struct {
	store Store
}

func NewTokenDenylist(store Store) *TokenDenylist {
	return &TokenDenylist{store: store}
}

func denylistKey(token string) string {
	return "denylist:" + utils.HashToken(token)
}

// Revoke denylists token for ttl. Tokens with no validity left are ignored.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, denylistKey(token), []byte{1}, ttl)
}

// IsRevoked reports whether token was signed out.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok, err := d.store.Get(ctx, denylistKey(token))
	return ok, err
}
