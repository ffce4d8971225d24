package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	key := "contract-test-capsule-" + time.Now().Format("20060102150405")

	sample := func() *domain.SavedState {
		home := domain.Routing{Key: "home", Configuration: domain.Config("Home")}
		dialog := domain.Routing{Key: "dialog", Configuration: domain.Config("Dialog", "title", "hi")}
		return &domain.SavedState{
			ActivationLevel: domain.Sleeping,
			Pool: map[domain.RoutingKey]domain.SavedElement{
				home.Key:   {Routing: home, ActivationState: domain.Sleeping},
				dialog.Key: {Routing: dialog, ActivationState: domain.Sleeping},
			},
			BackStack: []domain.RoutingHistoryElement{
				{Routing: home, Overlays: []domain.Routing{dialog}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		state := sample()

		err := store.Save(ctx, key, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.Sleeping, loaded.ActivationLevel)
		require.Len(t, loaded.Pool, 2)
		assert.Equal(t, "hi", loaded.Pool["dialog"].Routing.Configuration.Params["title"])
		require.Len(t, loaded.BackStack, 1)
		assert.Equal(t, domain.RoutingKey("dialog"), loaded.BackStack[0].Overlays[0].Key)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCapsuleNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, sample())
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCapsuleNotFound, "Load after Delete should return ErrCapsuleNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		_ = store.Save(ctx, id1, sample())
		_ = store.Save(ctx, id2, sample())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
