package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nadifa/guestbook/internal/config"
	"github.com/nadifa/guestbook/internal/logging"
	"github.com/nadifa/guestbook/internal/storage"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Applies the PostgreSQL schema used by the "postgres" storage backend.

Commands:
  (default)   apply pending migrations
  status      list migrations and whether they are applied
  reset       drop everything and recreate from the consolidated schema
  fresh       drop everything and apply every migration in order`)
	os.Exit(1)
}

func main() {
	logging.Setup()

	cfg, err := config.Load(".")
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	if cfg.DatabaseURL == "" {
		logging.Fatal("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := &migrator{pool: pool, dir: findMigrationDir()}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		err = m.incremental(ctx)
	case "status":
		err = m.status(ctx)
	case "reset":
		if err = m.dropAll(ctx); err == nil {
			err = m.consolidated(ctx)
		}
	case "fresh":
		if err = m.dropAll(ctx); err == nil {
			err = m.incremental(ctx)
		}
	default:
		usage()
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

type migrator struct {
	pool *pgxpool.Pool
	dir  string
}

// upFiles は .up.sql ファイル名を適用順で返す
func (m *migrator) upFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *migrator) isApplied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", name, err)
	}
	return exists, nil
}

func (m *migrator) execFile(ctx context.Context, filename string) error {
	sql, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("exec %s: %w", filename, err)
	}
	return nil
}

func (m *migrator) incremental(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		done, err := m.isApplied(ctx, name)
		if err != nil {
			return err
		}
		if done {
			continue
		}
		if err := m.execFile(ctx, filename); err != nil {
			return err
		}
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

func (m *migrator) status(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		done, err := m.isApplied(ctx, name)
		if err != nil {
			return err
		}
		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
	return nil
}

func (m *migrator) dropAll(ctx context.Context) error {
	slog.Info("dropping all tables")
	if err := m.execFile(ctx, "000_drop_all.sql"); err != nil {
		return err
	}
	slog.Info("all tables dropped")
	return nil
}

// consolidated は集約スキーマで再作成し、全マイグレーションを適用済みとして記録する
func (m *migrator) consolidated(ctx context.Context) error {
	slog.Info("applying consolidated schema")
	if err := m.execFile(ctx, "000_consolidated.sql"); err != nil {
		return err
	}
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
	return nil
}
