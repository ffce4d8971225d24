package loop_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/ribs/pkg/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_FrameDefersNestedPosts(t *testing.T) {
	l := loop.New()
	var order []string

	l.Post(func() {
		order = append(order, "first")
		l.Post(func() { order = append(order, "nested") })
	})
	l.Post(func() { order = append(order, "second") })

	assert.Equal(t, 2, l.Frame())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.Drain())
	assert.Equal(t, []string{"first", "second", "nested"}, order)
	assert.Zero(t, l.Drain())
}

func TestLoop_RunAndDo(t *testing.T) {
	l := loop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var counter int
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Do(ctx, func() error {
			counter++
			return nil
		}))
	}
	assert.Equal(t, 10, counter)

	boom := errors.New("boom")
	assert.ErrorIs(t, l.Do(ctx, func() error { return boom }), boom)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_Frames(t *testing.T) {
	var frames atomic.Int32
	l := loop.New(loop.WithFrames(time.Millisecond, func(dt time.Duration) {
		frames.Add(1)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return frames.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestLoop_DoHonoursContext(t *testing.T) {
	l := loop.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded, "nobody runs the loop")
}
