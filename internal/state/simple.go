package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/storage"
)

// Simple keeps one whole value under a fixed key on the raw medium. It is not
// owner scoped. Start loads in the background and reports ready no sooner
// than the minimum load delay.
type Simple[T any] struct {
	medium   storage.Medium
	key      string
	logger   *zap.Logger
	minDelay time.Duration

	start sync.Once
	ready chan struct{}

	mu     sync.Mutex
	value  T
	loaded bool
}

func NewSimple[T any](medium storage.Medium, key string, initial T, logger *zap.Logger, opts ...Option) *Simple[T] {
	o := buildOptions(opts)

	return &Simple[T]{
		medium:   medium,
		key:      key,
		logger:   logger.With(zap.String("key", key)),
		minDelay: o.minLoadDelay,
		ready:    make(chan struct{}),
		value:    initial,
	}
}

// Start begins loading once. Cancelling ctx before the delay elapses leaves
// the hook unloaded.
func (s *Simple[T]) Start(ctx context.Context) {
	s.start.Do(func() {
		go s.load(ctx)
	})
}

func (s *Simple[T]) load(ctx context.Context) {
	began := time.Now()
	stored := s.read(ctx)

	if wait := s.minDelay - time.Since(began); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	s.mu.Lock()
	if stored != nil {
		s.value = *stored
	}
	s.loaded = true
	s.mu.Unlock()

	close(s.ready)
}

func (s *Simple[T]) read(ctx context.Context) *T {
	text, ok, err := s.medium.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read slot", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var v *T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		s.logger.Warn("failed to parse slot", zap.Error(err))
		return nil
	}

	return v
}

// Ready is closed once the stored value has been applied
func (s *Simple[T]) Ready() <-chan struct{} {
	return s.ready
}

func (s *Simple[T]) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Simple[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *Simple[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Set updates memory and, after loading, writes the whole value. Changes made
// before loading are not written and are replaced by a stored value.
func (s *Simple[T]) Set(ctx context.Context, update Update[T]) {
	if update == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = update(s.value)

	if !s.loaded {
		return
	}

	data, err := json.Marshal(s.value)
	if err != nil {
		s.logger.Error("failed to encode slot", zap.Error(err))
		return
	}

	if err := s.medium.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to save slot", zap.Error(err))
	}
}

func (s *Simple[T]) SetValue(ctx context.Context, v T) {
	s.Set(ctx, Replace(v))
}

func (s *Simple[T]) State() (T, Setter[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.Set, s.loaded
}

func (s *Simple[T]) Snapshot() any {
	return s.Value()
}

// ReplaceJSON decodes data as the slot's value and sets it
func (s *Simple[T]) ReplaceJSON(ctx context.Context, data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}

	s.SetValue(ctx, v)
	return nil
}
