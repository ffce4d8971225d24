package capsule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates capsule access.
// Unused lock entries are dropped once their reference count reaches zero.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the lease of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must call release(key) after unlocking the entry.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// Load retrieves a snapshot. Missing capsules return domain.ErrCapsuleNotFound.
func (m *Manager) Load(ctx context.Context, key string) (*domain.SavedState, error) {
	var state *domain.SavedState
	err := m.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, key)
		return err
	})
	return state, err
}

// LoadOrEmpty retrieves a snapshot, or an empty Active one when the capsule does
// not exist yet. Nothing is written for a missing capsule.
func (m *Manager) LoadOrEmpty(ctx context.Context, key string) (*domain.SavedState, bool, error) {
	state, err := m.Load(ctx, key)
	if err == nil {
		return state, true, nil
	}
	if errors.Is(err, domain.ErrCapsuleNotFound) {
		return &domain.SavedState{ActivationLevel: domain.Active}, false, nil
	}
	return nil, false, fmt.Errorf("failed to load capsule %q: %w", key, err)
}

// Save persists the snapshot.
func (m *Manager) Save(ctx context.Context, key string, state *domain.SavedState) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.store.Save(ctx, key, state)
	})
}

// Update runs a read-modify-write cycle under the capsule lock.
// fn receives nil when the capsule does not exist; returning nil skips the write.
func (m *Manager) Update(ctx context.Context, key string, fn func(*domain.SavedState) (*domain.SavedState, error)) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, key)
		if err != nil && !errors.Is(err, domain.ErrCapsuleNotFound) {
			return err
		}
		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}
		return m.store.Save(ctx, key, next)
	})
}

// Delete removes the capsule from the store.
func (m *Manager) Delete(ctx context.Context, key string) error {
	return m.WithLock(ctx, key, func(ctx context.Context) error {
		return m.store.Delete(ctx, key)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes fn while holding the lock for the capsule.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"capsule", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
