package dsl

import (
	"testing"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Routes(t *testing.T) {
	b := New()
	b.Route("Home").
		View("content").
		Headless("analytics").
		Route("Dialog").
		View("card")

	reg, err := b.Build()
	require.NoError(t, err)

	home := domain.Routing{Key: "k1", Configuration: domain.Config("Home")}
	nodes := reg.Resolve(home).BuildNodes(home)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Home.content#k1", nodes[0].ID())
	assert.NotNil(t, nodes[0].View())
	assert.Equal(t, "Home.analytics#k1", nodes[1].ID())
	assert.Nil(t, nodes[1].View())

	again := reg.Resolve(home).BuildNodes(home)
	assert.NotSame(t, nodes[0], again[0], "every build creates fresh nodes")

	missing := domain.Routing{Key: "k2", Configuration: domain.Config("Settings")}
	assert.Empty(t, reg.Resolve(missing).BuildNodes(missing))
}

func TestBuilder_Default(t *testing.T) {
	reg, err := New().Default().Build()
	require.NoError(t, err)

	r := domain.Routing{Key: "k", Configuration: domain.Config("Anything")}
	nodes := reg.Resolve(r).BuildNodes(r)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Anything#k", nodes[0].ID())
}

func TestBuilder_DuplicateNode(t *testing.T) {
	b := New()
	b.Route("Home").View("content").View("content")

	_, err := b.Build()
	assert.ErrorContains(t, err, "duplicate node")
}
