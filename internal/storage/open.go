package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/harmony/internal/config"
	"github.com/Veraticus/harmony/internal/service"
)

// Open builds the document store selected by cfg. SQLite stores are migrated
// before they are returned.
func Open(ctx context.Context, cfg config.StorageConfig) (service.DocumentStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	case config.BackendFile, "":
		return NewFileStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
