package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成し、Ping で疎通を確認する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// PgStorage is the PostgreSQL implementation of Storage. The kv_entries table
// is created by cmd/migrate.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage creates a PgStorage backed by the given pool.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// Ensure PgStorage implements Storage at compile time.
var _ Storage = (*PgStorage)(nil)

func (s *PgStorage) Get(ctx context.Context, namespace, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE namespace = $1 AND entry_key = $2`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: select: %w", err)
	}
	return value, nil
}

func (s *PgStorage) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_entries (namespace, entry_key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (namespace, entry_key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: upsert: %w", err)
	}
	return nil
}

func (s *PgStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PgStorage) Close() error {
	s.pool.Close()
	return nil
}
