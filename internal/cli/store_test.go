package cli

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/adapters/file"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat(string(b), 32)))
}

func snapshot() *domain.SavedState {
	r := domain.Routing{Key: "k1", Configuration: domain.Config("Profile", "email", "ada@example.com")}
	return &domain.SavedState{
		Pool:            map[domain.RoutingKey]domain.SavedElement{r.Key: {Routing: r, ActivationState: domain.Active}},
		ActivationLevel: domain.Active,
		BackStack:       []domain.RoutingHistoryElement{{Routing: r}},
	}
}

func TestOpenManager_Backends(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cases := map[string]StoreOptions{
		"memory": {Backend: StoreMemory},
		"file":   {Backend: StoreFile, Dir: t.TempDir()},
		"redis":  {Backend: StoreRedis, RedisURL: "redis://" + mr.Addr()},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			m, closeStore, err := OpenManager(opts, logging.NewNop())
			require.NoError(t, err)
			defer closeStore()

			require.NoError(t, m.Save(ctx, "app", snapshot()))
			loaded, err := m.Load(ctx, "app")
			require.NoError(t, err)
			assert.Equal(t, snapshot(), loaded)

			keys, err := m.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"app"}, keys)
		})
	}
}

func TestOpenManager_Errors(t *testing.T) {
	_, _, err := OpenManager(StoreOptions{Backend: "tape"}, logging.NewNop())
	assert.ErrorContains(t, err, "unknown store")

	_, _, err = OpenManager(StoreOptions{Backend: StoreRedis}, logging.NewNop())
	assert.ErrorContains(t, err, "--redis-url")

	_, _, err = OpenManager(StoreOptions{Backend: StoreRedis, RedisURL: "http://nope"}, logging.NewNop())
	assert.ErrorContains(t, err, "invalid redis url")

	_, _, err = OpenManager(StoreOptions{Backend: StoreMemory, EncryptionKey: "c2hvcnQ="}, logging.NewNop())
	assert.ErrorContains(t, err, "must be 32 bytes")

	_, _, err = OpenManager(StoreOptions{Backend: StoreMemory, EncryptionKey: testKey('a'), FallbackKeys: []string{"%%%"}}, logging.NewNop())
	assert.ErrorContains(t, err, "fallback key 1")
}

func TestOpenManager_Middleware(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := StoreOptions{
		Backend:       StoreFile,
		Dir:           dir,
		EncryptionKey: testKey('a'),
		PIIFields:     []string{"^email$"},
	}

	m, closeStore, err := OpenManager(opts, logging.NewNop())
	require.NoError(t, err)
	defer closeStore()
	require.NoError(t, m.Save(ctx, "app", snapshot()))

	raw, err := file.New(dir).Load(ctx, "app")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed, "the file holds only the sealed envelope")
	assert.Empty(t, raw.Pool)

	loaded, err := m.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.BackStack[0].Routing.Configuration.Params["email"])

	t.Run("Key Rotation", func(t *testing.T) {
		rotated := opts
		rotated.EncryptionKey = testKey('b')
		rotated.FallbackKeys = []string{testKey('a')}
		m, closeStore, err := OpenManager(rotated, logging.NewNop())
		require.NoError(t, err)
		defer closeStore()

		loaded, err := m.Load(ctx, "app")
		require.NoError(t, err)
		assert.Len(t, loaded.Pool, 1)
	})
}
