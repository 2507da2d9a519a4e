package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nadifa/guestbook/internal/config"
)

// Open returns the Storage selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Config) (Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStorage(), nil
	case config.BackendFile:
		return NewLocalStorage(cfg.DataDir), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(cfg.DataDir, SQLiteFileName))
	case config.BackendPostgres:
		pool, err := NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("storage: connect postgres: %w", err)
		}
		return NewPgStorage(pool), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
