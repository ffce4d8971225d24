package node

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/ribs/pkg/domain"
)

// Node is an in-memory tree node. It implements domain.Node and, for its children,
// ports.ParentNode.
type Node struct {
	id   string
	view *View

	children     []domain.Node
	viewChildren []domain.Node
}

// New creates a node owning a view.
func New(id string) *Node {
	return &Node{id: id, view: NewView()}
}

// NewHeadless creates a node without a view.
func NewHeadless(id string) *Node {
	return &Node{id: id}
}

func (n *Node) ID() string {
	return n.id
}

// View returns the node's view, or nil for headless nodes.
func (n *Node) View() domain.View {
	if n.view == nil {
		return nil
	}
	return n.view
}

// Surface exposes the concrete view, nil for headless nodes.
func (n *Node) Surface() *View {
	return n.view
}

func (n *Node) AttachChildNode(child domain.Node) {
	if n.IsChildAttached(child) {
		return
	}
	n.children = append(n.children, child)
}

// DetachChildNode detaches child and its view.
func (n *Node) DetachChildNode(child domain.Node) {
	n.DetachChildView(child)
	n.children = slices.DeleteFunc(n.children, func(c domain.Node) bool { return c == child })
}

// AttachChildView attaches the view of an attached child. Headless and unattached
// children are ignored.
func (n *Node) AttachChildView(child domain.Node) {
	if child.View() == nil || !n.IsChildAttached(child) || n.IsChildViewAttached(child) {
		return
	}
	n.viewChildren = append(n.viewChildren, child)
}

// DetachChildView removes the child's view and makes it opaque again, so a view
// faded out on exit shows up when it is reattached without a transition.
func (n *Node) DetachChildView(child domain.Node) {
	if !n.IsChildViewAttached(child) {
		return
	}
	n.viewChildren = slices.DeleteFunc(n.viewChildren, func(c domain.Node) bool { return c == child })
	if v, ok := child.View().(interface{ SetAlpha(float64) }); ok {
		v.SetAlpha(1)
	}
}

func (n *Node) IsChildAttached(child domain.Node) bool {
	return slices.Contains(n.children, child)
}

func (n *Node) IsChildViewAttached(child domain.Node) bool {
	return slices.Contains(n.viewChildren, child)
}

// Children lists attached children in attach order.
func (n *Node) Children() []domain.Node {
	return slices.Clone(n.children)
}

// ViewChildren lists children whose views are attached, bottom first.
func (n *Node) ViewChildren() []domain.Node {
	return slices.Clone(n.viewChildren)
}

// Dump renders the children one per line, marking attached and hidden views.
func (n *Node) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", n.id)
	for _, c := range n.children {
		mark := ""
		if n.IsChildViewAttached(c) {
			mark = " [view]"
			if v := c.View(); v != nil && !v.IsVisible() {
				mark = " [view hidden]"
			}
		}
		fmt.Fprintf(&b, "  %s%s\n", c.ID(), mark)
	}
	return b.String()
}
