package ports

import (
	"context"

	"github.com/aretw0/ribs/pkg/domain"
)

// StateStore defines the interface for persisting routing state.
// This allows a router to survive process death and restore its pool and back stack.
type StateStore interface {
	// Save persists the state for a given capsule key.
	Save(ctx context.Context, key string, state *domain.SavedState) error

	// Load retrieves the state for a given capsule key.
	// Returns domain.ErrCapsuleNotFound if nothing was saved under the key.
	Load(ctx context.Context, key string) (*domain.SavedState, error)

	// Delete removes the state for a given capsule key.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all saved capsules.
	List(ctx context.Context) ([]string, error)
}
