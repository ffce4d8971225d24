package tests

import (
	"testing"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// ParentNodeContractTest is a reusable test suite that verifies if a node tree complies
// with ports.ParentNode. newChild must return a fresh child with a view on every call.
func ParentNodeContractTest(t *testing.T, parent ports.ParentNode, newChild func(id string) domain.Node) {
	t.Helper()

	t.Run("AttachNode_Idempotent", func(t *testing.T) {
		child := newChild("attach-twice")
		parent.AttachChildNode(child)
		parent.AttachChildNode(child)
		if !parent.IsChildAttached(child) {
			t.Fatal("expected child to be attached")
		}
		parent.DetachChildNode(child)
		if parent.IsChildAttached(child) {
			t.Error("expected a single detach to undo a repeated attach")
		}
	})

	t.Run("DetachUnknown_NoOp", func(t *testing.T) {
		child := newChild("never-attached")
		parent.DetachChildView(child)
		parent.DetachChildNode(child)
		if parent.IsChildAttached(child) || parent.IsChildViewAttached(child) {
			t.Error("detaching an unknown child must not attach it")
		}
	})

	t.Run("ViewLifecycle", func(t *testing.T) {
		child := newChild("with-view")
		parent.AttachChildNode(child)
		if parent.IsChildViewAttached(child) {
			t.Fatal("attaching a node must not attach its view")
		}

		parent.AttachChildView(child)
		if !parent.IsChildViewAttached(child) {
			t.Fatal("expected view to be attached")
		}

		parent.DetachChildView(child)
		if parent.IsChildViewAttached(child) {
			t.Error("expected view to be detached")
		}
		if !parent.IsChildAttached(child) {
			t.Error("detaching a view must keep the node attached")
		}
		parent.DetachChildNode(child)
	})

	t.Run("DetachNode_DetachesView", func(t *testing.T) {
		child := newChild("detach-with-view")
		parent.AttachChildNode(child)
		parent.AttachChildView(child)
		parent.DetachChildNode(child)
		if parent.IsChildViewAttached(child) {
			t.Error("detaching a node must detach its view")
		}
	})
}
