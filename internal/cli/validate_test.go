package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Validate("testdata/app.yaml", &out))
	assert.Equal(t, ">>> Scenario 'app' is valid.\n", out.String())

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\ninitial: {name: Home}\nroutes:\n  Empty: {}\n"), 0o644))

	out.Reset()
	assert.ErrorContains(t, Validate(bad, &out), "route 'Empty' builds no nodes")

	err := Play(t.Context(), PlayOptions{Path: bad}, &out, logging.NewNop())
	assert.ErrorContains(t, err, "found 1 errors")
}
