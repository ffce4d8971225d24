package domain

// Node is a handle to one child node of the routing tree.
// The node tree itself is an external collaborator; the state machine only keeps
// handles to the nodes it built through a RoutingAction.
type Node interface {
	// ID uniquely identifies the node within its parent.
	ID() string

	// View returns the node's view, or nil for view-less nodes.
	View() View
}

// View is the visible part of a Node.
type View interface {
	SetVisible(visible bool)
	IsVisible() bool
}
