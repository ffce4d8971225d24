package cli

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a buffer written by the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServe_PersistsOnShutdown(t *testing.T) {
	dir := t.TempDir()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ServeOptions{
			Path:     "testdata/app.yaml",
			Capsule:  "served",
			Store:    StoreOptions{Backend: StoreFile, Dir: dir},
			Listener: listener,
		}, &out, logging.NewNop())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/navigate", "application/json",
		strings.NewReader(`{"op":"push","configuration":{"name":"Settings"}}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	saved, err := file.New(dir).Load(context.Background(), "served")
	require.NoError(t, err)
	require.Len(t, saved.BackStack, 2)
	assert.Equal(t, "Settings", saved.BackStack[1].Routing.Configuration.Name)
	assert.Contains(t, out.String(), "Capsule 'served' saved.")
}

func TestServe_MissingScenario(t *testing.T) {
	err := Serve(context.Background(), ServeOptions{Path: "testdata/none.yaml"}, &syncBuffer{}, logging.NewNop())
	assert.Error(t, err)
}
