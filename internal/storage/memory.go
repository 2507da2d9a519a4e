package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps everything in process memory. Values are lost on exit.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]map[string]string)}
}

var _ Storage = (*MemoryStorage)(nil)

func (s *MemoryStorage) Get(_ context.Context, namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[namespace][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStorage) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]string)
		s.data[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *MemoryStorage) Ping(context.Context) error { return nil }

func (s *MemoryStorage) Close() error { return nil }
