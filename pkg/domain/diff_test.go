package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	a := Routing{Key: "a", Configuration: Config("A")}
	b := Routing{Key: "b", Configuration: Config("B")}

	base := NewWorkingState()
	base.Pool["a"] = Unresolved(Active, a)

	t.Run("Initial Load (Old is Nil)", func(t *testing.T) {
		diff := Diff(nil, &base)
		require.NotNil(t, diff)
		assert.Equal(t, []RoutingKey{"a"}, diff.Added)
		require.NotNil(t, diff.ActivationLevel)
		assert.Equal(t, Active, *diff.ActivationLevel)
	})

	t.Run("No Changes", func(t *testing.T) {
		same := base.Clone()
		assert.Nil(t, Diff(&base, &same))
	})

	t.Run("Added Removed Changed", func(t *testing.T) {
		next := base.Clone()
		next.Pool["a"] = Unresolved(Inactive, a)
		next.Pool["b"] = Unresolved(Active, b)

		diff := Diff(&base, &next)
		require.NotNil(t, diff)
		assert.Equal(t, []RoutingKey{"b"}, diff.Added)
		assert.Empty(t, diff.Removed)
		assert.Equal(t, map[RoutingKey]ActivationState{"a": Inactive}, diff.Changed)
		assert.Nil(t, diff.ActivationLevel)

		back := Diff(&next, &base)
		require.NotNil(t, back)
		assert.Equal(t, []RoutingKey{"b"}, back.Removed)
	})

	t.Run("Level Change", func(t *testing.T) {
		next := base.Clone()
		next.ActivationLevel = Sleeping
		diff := Diff(&base, &next)
		require.NotNil(t, diff)
		require.NotNil(t, diff.ActivationLevel)
		assert.Equal(t, Sleeping, *diff.ActivationLevel)
	})
}

func TestDiffJSONSerialization(t *testing.T) {
	base := NewWorkingState()
	next := base.Clone()
	next.Pool["x"] = Unresolved(Sleeping, Routing{Key: "x", Configuration: Config("X")})

	diff := Diff(&base, &next)
	require.NotNil(t, diff)

	bytes, err := json.Marshal(diff)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(bytes), `"added":["x"]`), string(bytes))
	assert.False(t, strings.Contains(string(bytes), `"changed"`), string(bytes))
}
