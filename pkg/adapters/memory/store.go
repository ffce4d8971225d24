package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/ribs/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.SavedState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.SavedState),
	}
}

// Save keeps a private copy of the snapshot.
func (s *Store) Save(ctx context.Context, key string, state *domain.SavedState) error {
	copied := state.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored snapshot.
func (s *Store) Load(ctx context.Context, key string) (*domain.SavedState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[key]
	if !ok {
		return nil, domain.ErrCapsuleNotFound
	}
	return state.Clone(), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored capsule keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
