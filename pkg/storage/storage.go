// Package storage provides the local durable key-value layer the cart
// engine persists into between sessions. Values are opaque strings; callers
// own serialization and must tolerate missing or corrupt entries.
package storage

import (
	"context"
	"fmt"

	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
)

// KV is the durable key-value surface used for cart snapshots and the
// auth token. Get reports found=false for missing keys instead of erroring.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// New builds the KV backend selected by configuration.
func New(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (KV, error) {
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.StorageDriverRedis:
		return NewRedis(ctx, cfg, logg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
