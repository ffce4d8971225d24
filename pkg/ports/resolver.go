package ports

import "github.com/aretw0/ribs/pkg/domain"

// RoutingResolver maps a routing to the action able to build it.
type RoutingResolver interface {
	Resolve(routing domain.Routing) RoutingAction
}

// RoutingAction builds the nodes of one routing. An action may build no node at all,
// for routings that only carry state.
type RoutingAction interface {
	BuildNodes(routing domain.Routing) []domain.Node
}

// ResolverFunc adapts a function to RoutingResolver.
type ResolverFunc func(routing domain.Routing) RoutingAction

func (f ResolverFunc) Resolve(routing domain.Routing) RoutingAction {
	return f(routing)
}

// BuildFunc adapts a function to RoutingAction.
type BuildFunc func(routing domain.Routing) []domain.Node

func (f BuildFunc) BuildNodes(routing domain.Routing) []domain.Node {
	return f(routing)
}

// Noop is a RoutingAction that builds nothing.
var Noop RoutingAction = BuildFunc(func(domain.Routing) []domain.Node { return nil })
