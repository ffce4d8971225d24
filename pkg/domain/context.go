package domain

import (
	"fmt"
	"slices"
)

// ActivationState tells whether a pool element is on screen.
type ActivationState int

const (
	// Inactive elements are in the pool but not on screen.
	Inactive ActivationState = iota
	// Sleeping elements are logically active while the host is backgrounded.
	Sleeping
	// Active elements are on screen.
	Active
)

func (s ActivationState) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Sleeping:
		return "sleeping"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("activation(%d)", int(s))
	}
}

// IsActive is true for Active and Sleeping elements.
func (s ActivationState) IsActive() bool {
	return s == Active || s == Sleeping
}

// MarshalText implements encoding.TextMarshaler.
func (s ActivationState) MarshalText() ([]byte, error) {
	switch s {
	case Inactive, Sleeping, Active:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid activation state %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ActivationState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "inactive":
		*s = Inactive
	case "sleeping":
		*s = Sleeping
	case "active":
		*s = Active
	default:
		return fmt.Errorf("invalid activation state %q", string(text))
	}
	return nil
}

// RoutingContext is one element of the pool: a Routing, its activation state and,
// once resolved, the node handles built for it.
type RoutingContext struct {
	Routing         Routing
	ActivationState ActivationState
	Nodes           []Node

	resolved bool
}

// Unresolved creates a context without node handles.
func Unresolved(state ActivationState, routing Routing) RoutingContext {
	return RoutingContext{Routing: routing, ActivationState: state}
}

// Resolved creates a context holding the nodes built for the routing.
func Resolved(state ActivationState, routing Routing, nodes []Node) RoutingContext {
	return RoutingContext{Routing: routing, ActivationState: state, Nodes: nodes, resolved: true}
}

// IsResolved reports whether the context carries node handles.
func (c RoutingContext) IsResolved() bool {
	return c.resolved
}

// Resolve returns a resolved copy holding nodes, keeping the activation state.
func (c RoutingContext) Resolve(nodes []Node) RoutingContext {
	return Resolved(c.ActivationState, c.Routing, slices.Clone(nodes))
}

// Unresolve drops the node handles, as done when persisting.
func (c RoutingContext) Unresolve() RoutingContext {
	return Unresolved(c.ActivationState, c.Routing)
}

// WithActivationState returns a copy in the given state.
func (c RoutingContext) WithActivationState(state ActivationState) RoutingContext {
	c.ActivationState = state
	return c
}

func (c RoutingContext) String() string {
	kind := "unresolved"
	if c.resolved {
		kind = "resolved"
	}
	return fmt.Sprintf("%s(%s, %s)", kind, c.ActivationState, c.Routing.Configuration)
}
