package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/ribs/pkg/adapters/memory"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	home := domain.Routing{Key: "home", Configuration: domain.Config("Home", "tab", "feed")}
	state := &domain.SavedState{
		ActivationLevel: domain.Active,
		Pool:            map[domain.RoutingKey]domain.SavedElement{home.Key: {Routing: home, ActivationState: domain.Active}},
		BackStack:       []domain.RoutingHistoryElement{{Routing: home}},
	}
	require.NoError(t, store.Save(ctx, "c1", state))

	state.Pool[home.Key].Routing.Configuration.Params["tab"] = "mutated"
	state.BackStack[0].Routing.Key = "other"

	loaded, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "feed", loaded.Pool["home"].Routing.Configuration.Params["tab"])
	assert.Equal(t, domain.RoutingKey("home"), loaded.BackStack[0].Routing.Key)

	loaded.ActivationLevel = domain.Sleeping
	again, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.Active, again.ActivationLevel)
}
