package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage は各キーを baseDir/<namespace>/<key> のファイルとして保存する。
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage は baseDir をルートとする LocalStorage を生成する。
// ディレクトリは最初の Set で作成される。
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) path(namespace, key string) (string, error) {
	if err := ValidateName(namespace); err != nil {
		return "", err
	}
	if err := ValidateName(key); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, namespace, key), nil
}

func (s *LocalStorage) Get(_ context.Context, namespace, key string) (string, error) {
	p, err := s.path(namespace, key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: read: %w", err)
	}
	return string(data), nil
}

// Set は一時ファイルに書き込んでから rename する。読み手が書きかけの値を見ることはない。
func (s *LocalStorage) Set(_ context.Context, namespace, key, value string) error {
	dest, err := s.path(namespace, key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}

// Ping はベースディレクトリが存在し、ディレクトリであることを確認する。
func (s *LocalStorage) Ping(context.Context) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return fmt.Errorf("storage: stat: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: %s is not a directory", s.baseDir)
	}
	return nil
}

func (s *LocalStorage) Close() error { return nil }
