package storage

import (
	"context"
	"fmt"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/storage"
)

// PublicPath is where the HTTP server exposes local uploads.
const PublicPath = "/uploads"

// New returns the storage driver selected by cfg.Driver.
func New(ctx context.Context, cfg *config.Upload, serverURL string) (storage.Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.Dir, serverURL+PublicPath)
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}
