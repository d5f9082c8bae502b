// Package storagetest provides a storage.Medium that records calls and fails
// on demand, for tests of the layers above storage.
package storagetest

import (
	"context"
	"errors"
	"sync"

	"skillmatch/internal/storage/memory"
)

var ErrInjected = errors.New("storagetest: injected failure")

// Operation names used by Fail and Calls
const (
	OpGet    = "get"
	OpSet    = "set"
	OpRemove = "remove"
	OpClear  = "clear"
	OpKeys   = "keys"
)

// AnyKey makes a failure apply to every key of an operation
const AnyKey = "*"

type Call struct {
	Op  string
	Key string
}

// Medium wraps an in-memory medium with call recording and failure injection
type Medium struct {
	*memory.Medium

	mu       sync.Mutex
	calls    []Call
	failures map[string]map[string]error
}

func New() *Medium {
	return &Medium{
		Medium:   memory.New(),
		failures: make(map[string]map[string]error),
	}
}

// Fail makes op on key return ErrInjected until Heal is called
func (m *Medium) Fail(op, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failures[op] == nil {
		m.failures[op] = make(map[string]error)
	}
	m.failures[op][key] = ErrInjected
}

func (m *Medium) Heal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = make(map[string]map[string]error)
}

func (m *Medium) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsFor returns recorded calls of one operation
func (m *Medium) CallsFor(op string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *Medium) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Medium) record(op, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: op, Key: key})

	byKey := m.failures[op]
	if err, ok := byKey[key]; ok {
		return err
	}
	if err, ok := byKey[AnyKey]; ok {
		return err
	}
	return nil
}

func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := m.record(OpGet, key); err != nil {
		return "", false, err
	}
	return m.Medium.Get(ctx, key)
}

func (m *Medium) Set(ctx context.Context, key, value string) error {
	if err := m.record(OpSet, key); err != nil {
		return err
	}
	return m.Medium.Set(ctx, key, value)
}

func (m *Medium) Remove(ctx context.Context, key string) error {
	if err := m.record(OpRemove, key); err != nil {
		return err
	}
	return m.Medium.Remove(ctx, key)
}

func (m *Medium) Clear(ctx context.Context) error {
	if err := m.record(OpClear, ""); err != nil {
		return err
	}
	return m.Medium.Clear(ctx)
}

func (m *Medium) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := m.record(OpKeys, prefix); err != nil {
		return nil, err
	}
	return m.Medium.Keys(ctx, prefix)
}
