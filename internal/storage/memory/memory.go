package memory

import (
	"context"
	"strings"
	"sync"

	"skillmatch/internal/storage"
)

// Medium keeps values in a map. Used for the memory backend and in tests.
type Medium struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

func New() *Medium {
	return &Medium{values: make(map[string]string)}
}

func (m *Medium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, storage.ErrClosed
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Medium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *Medium) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	delete(m.values, key)
	return nil
}

func (m *Medium) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	m.values = make(map[string]string)
	return nil
}

func (m *Medium) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, storage.ErrClosed
	}

	keys := make([]string, 0)
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Len returns the number of stored keys
func (m *Medium) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

func (m *Medium) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
