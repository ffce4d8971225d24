package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/ribs/pkg/adapters/memory"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/persistence/middleware"
	"github.com/aretw0/ribs/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleState(secret string) *domain.SavedState {
	home := domain.Routing{Key: "home", Configuration: domain.Config("Home", "token", secret)}
	return &domain.SavedState{
		ActivationLevel: domain.Sleeping,
		Pool:            map[domain.RoutingKey]domain.SavedElement{home.Key: {Routing: home, ActivationState: domain.Sleeping}},
		BackStack:       []domain.RoutingHistoryElement{{Routing: home}},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunStateStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secure := mw(underlying)
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "main", sampleState("my-secret-sauce")))

	stored, err := underlying.Load(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, stored.Pool, "pool should be hidden in the envelope")
	assert.Empty(t, stored.BackStack)
	assert.Equal(t, domain.Sleeping, stored.ActivationLevel)
	assert.NotEmpty(t, stored.Sealed)
	assert.False(t, strings.Contains(stored.Sealed, "my-secret-sauce"))

	loaded, err := secure.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "my-secret-sauce", loaded.Pool["home"].Routing.Configuration.Params["token"])
	require.Len(t, loaded.BackStack, 1)
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, secureOld.Save(ctx, "main", sampleState("old")))

	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Load(ctx, "main")
	require.NoError(t, err, "fallback key should decrypt")
	assert.Equal(t, "old", loaded.Pool["home"].Routing.Configuration.Params["token"])

	require.NoError(t, secureNew.Save(ctx, "main", sampleState("new")))

	_, err = secureOld.Load(ctx, "main")
	assert.Error(t, err, "old key alone cannot read a snapshot sealed with the new key")
}

func TestEncryptionMiddleware_BoundToKey(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "a", sampleState("x")))
	envelope, err := underlying.Load(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, underlying.Save(ctx, "b", envelope))

	_, err = secure.Load(ctx, "b")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainState(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	require.NoError(t, underlying.Save(ctx, "plain", sampleState("x")))

	_, err := secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)

	_, err = secure.Load(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrCapsuleNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
