package node_test

import (
	"testing"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
)

func TestNode_ParentContract(t *testing.T) {
	tests.ParentNodeContractTest(t, node.New("root"), func(id string) domain.Node {
		return node.New(id)
	})
}

func TestNode_HeadlessChildHasNoView(t *testing.T) {
	root := node.New("root")
	child := node.NewHeadless("logic")

	assert.Nil(t, child.View())

	root.AttachChildNode(child)
	root.AttachChildView(child)
	assert.True(t, root.IsChildAttached(child))
	assert.False(t, root.IsChildViewAttached(child))
}

func TestNode_ViewOrderAndDump(t *testing.T) {
	root := node.New("root")
	home := node.New("home")
	dialog := node.New("dialog")

	root.AttachChildNode(home)
	root.AttachChildNode(dialog)
	root.AttachChildView(home)
	root.AttachChildView(dialog)
	dialog.Surface().SetVisible(false)

	assert.Equal(t, []domain.Node{home, dialog}, root.ViewChildren())
	assert.Equal(t, "root\n  home [view]\n  dialog [view hidden]\n", root.Dump())
}

func TestView_AlphaIsClamped(t *testing.T) {
	v := node.NewView()
	v.SetAlpha(1.5)
	assert.Equal(t, 1.0, v.Alpha())
	v.SetAlpha(-1)
	assert.Equal(t, 0.0, v.Alpha())
}

func TestNode_DetachRestoresAlpha(t *testing.T) {
	root := node.New("root")
	home := node.New("home")
	root.AttachChildView(home)
	home.Surface().SetAlpha(0)

	root.DetachChildView(node.New("stranger"))
	assert.Equal(t, 0.0, home.Surface().Alpha(), "attached views keep their opacity")

	root.DetachChildView(home)
	assert.Equal(t, 1.0, home.Surface().Alpha())

	headless := node.NewHeadless("sync")
	root.AttachChildView(headless)
	root.DetachChildView(headless)
	assert.False(t, root.IsChildViewAttached(headless))
}
