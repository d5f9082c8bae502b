// Package state keeps in-memory copies of persisted slots in sync with the
// persistence service. A hook loads once per owning identity and writes every
// change through; write failures are logged and never reach the caller.
//
// Hooks guard their own fields, but two hooks bound to the same key do not
// coordinate: the last write wins.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Identity is the owner a hook is mounted for. A zero UserID means nobody is
// signed in.
type Identity struct {
	UserID  string
	Role    string
	Company string
}

func (i Identity) IsZero() bool {
	return i.UserID == ""
}

// Update computes the next value from the previous one
type Update[T any] func(prev T) T

// Replace is the direct-value form of Update
func Replace[T any](v T) Update[T] {
	return func(T) T { return v }
}

// Setter is the updater returned by State
type Setter[T any] func(ctx context.Context, update Update[T])

// Binding ties a slot to its storage. Load returning nil means nothing is
// stored. Save gets the owning user and a fresh timestamp to merge in.
type Binding[T any] struct {
	Slot    string
	Default func(id Identity) T
	Load    func(ctx context.Context, userID string) (*T, error)
	Save    func(ctx context.Context, userID string, value T, updatedAt time.Time) error
}

const DefaultMinLoadDelay = 300 * time.Millisecond

type options struct {
	now          func() time.Time
	minLoadDelay time.Duration
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithMinLoadDelay sets how long a Simple hook waits before reporting ready
func WithMinLoadDelay(d time.Duration) Option {
	return func(o *options) {
		o.minLoadDelay = d
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		minLoadDelay: DefaultMinLoadDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Persistent is a single-value slot owned by one identity
type Persistent[T any] struct {
	binding Binding[T]
	logger  *zap.Logger
	now     func() time.Time

	mu          sync.Mutex
	identity    Identity
	initialized string // user the current value was loaded for
	value       T
	loaded      bool
}

func New[T any](binding Binding[T], logger *zap.Logger, opts ...Option) *Persistent[T] {
	o := buildOptions(opts)

	return &Persistent[T]{
		binding: binding,
		logger:  logger.With(zap.String("slot", binding.Slot)),
		now:     o.now,
		value:   binding.Default(Identity{}),
	}
}

// Mount binds the hook to id. Without an identity the default is served and
// storage is never touched. A new identity resets the value to its default
// and loads once; mounting the same identity again does nothing.
func (p *Persistent[T]) Mount(ctx context.Context, id Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if id.IsZero() {
		if p.identity.IsZero() && p.loaded {
			return
		}
		p.identity = id
		p.initialized = ""
		p.value = p.binding.Default(id)
		p.loaded = true
		return
	}

	if p.initialized == id.UserID {
		p.identity = id
		return
	}

	p.identity = id
	p.value = p.binding.Default(id)
	p.loaded = false

	stored, err := p.binding.Load(ctx, id.UserID)
	switch {
	case err != nil:
		p.logger.Warn("failed to load slot, keeping default",
			zap.String("user_id", id.UserID),
			zap.Error(err),
		)
	case stored != nil:
		p.value = *stored
	}

	p.initialized = id.UserID
	p.loaded = true
}

func (p *Persistent[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Persistent[T]) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Set applies update in memory and, once loaded for an identity, writes the
// result through. The in-memory value is never rolled back.
func (p *Persistent[T]) Set(ctx context.Context, update Update[T]) {
	if update == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.value = update(p.value)

	if p.identity.IsZero() || !p.loaded {
		return
	}

	p.persist(ctx, p.identity.UserID, p.value)
}

func (p *Persistent[T]) SetValue(ctx context.Context, v T) {
	p.Set(ctx, Replace(v))
}

// State returns the value, its setter and whether loading has finished
func (p *Persistent[T]) State() (T, Setter[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.Set, p.loaded
}

func (p *Persistent[T]) persist(ctx context.Context, userID string, value T) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while saving slot",
				zap.String("user_id", userID),
				zap.Any("panic", r),
			)
		}
	}()

	if err := p.binding.Save(ctx, userID, value, p.now().UTC()); err != nil {
		p.logger.Error("failed to save slot",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
