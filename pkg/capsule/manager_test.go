package capsule_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/adapters/memory"
	"github.com/aretw0/ribs/pkg/adapters/redis"
	"github.com/aretw0/ribs/pkg/capsule"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore widens the read-modify-write window so lost updates would show.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Load(ctx context.Context, key string) (*domain.SavedState, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, key)
}

func counter(state *domain.SavedState) int {
	if state == nil {
		return 0
	}
	return len(state.BackStack)
}

func TestManager_UpdateIsSerialised(t *testing.T) {
	mgr := capsule.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.Update(ctx, "main", func(s *domain.SavedState) (*domain.SavedState, error) {
				if s == nil {
					s = &domain.SavedState{}
				}
				home := domain.NewHistoryElement(domain.Config("Home"))
				s.BackStack = append(s.BackStack, home)
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := mgr.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 10, counter(state))
}

func TestManager_UpdateSkipsNil(t *testing.T) {
	mgr := capsule.NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, mgr.Update(ctx, "main", func(s *domain.SavedState) (*domain.SavedState, error) {
		assert.Nil(t, s)
		return nil, nil
	}))

	keys, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	boom := errors.New("boom")
	err = mgr.Update(ctx, "main", func(*domain.SavedState) (*domain.SavedState, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_LoadOrEmpty(t *testing.T) {
	mgr := capsule.NewManager(memory.NewStore())
	ctx := context.Background()

	state, found, err := mgr.LoadOrEmpty(ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, domain.Active, state.ActivationLevel)
	assert.Empty(t, state.Pool)

	require.NoError(t, mgr.Save(ctx, "fresh", &domain.SavedState{ActivationLevel: domain.Sleeping}))
	state, found, err = mgr.LoadOrEmpty(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Sleeping, state.ActivationLevel)
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string, time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("unavailable")
}

type leakyLocker struct{}

func (leakyLocker) Lock(context.Context, string, time.Duration) (ports.UnlockFunc, error) {
	return func(context.Context) error { return errors.New("release failed") }, nil
}

func TestManager_LockerFailures(t *testing.T) {
	ctx := context.Background()

	mgr := capsule.NewManager(memory.NewStore(), capsule.WithLocker(failingLocker{}))
	err := mgr.Save(ctx, "main", &domain.SavedState{})
	assert.ErrorContains(t, err, "distributed lock")

	var buf bytes.Buffer
	mgr = capsule.NewManager(memory.NewStore(),
		capsule.WithLocker(leakyLocker{}),
		capsule.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)),
	)
	require.NoError(t, mgr.Save(ctx, "main", &domain.SavedState{}))
	assert.Contains(t, buf.String(), "Failed to release distributed lock")
	assert.Contains(t, buf.String(), "capsule=main")
}

func TestManager_RedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	mgr := capsule.NewManager(
		redis.NewFromClient(client),
		capsule.WithLocker(redis.NewLocker(client, "ribs:")),
		capsule.WithLockTTL(5*time.Second),
	)
	ctx := context.Background()

	err := mgr.WithLock(ctx, "main", func(ctx context.Context) error {
		assert.True(t, mr.Exists("ribs:lock:main"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("ribs:lock:main"))
}
