package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/ports"
)

type nodeSpec struct {
	name     string
	withView bool
}

// RouteBuilder provides a fluent API for declaring the nodes of one configuration.
type RouteBuilder struct {
	name    string
	nodes   []nodeSpec
	builder *Builder
}

// View adds a node owning a view.
func (r *RouteBuilder) View(name string) *RouteBuilder {
	r.nodes = append(r.nodes, nodeSpec{name: name, withView: true})
	return r
}

// Headless adds a node without a view, such as pure business logic.
func (r *RouteBuilder) Headless(name string) *RouteBuilder {
	r.nodes = append(r.nodes, nodeSpec{name: name})
	return r
}

// Route continues with another configuration, for chaining.
func (r *RouteBuilder) Route(name string) *RouteBuilder {
	return r.builder.Route(name)
}

func (r *RouteBuilder) validate() error {
	if r.name == "" {
		return errors.New("route without a configuration name")
	}
	seen := make(map[string]bool, len(r.nodes))
	for _, n := range r.nodes {
		if seen[n.name] {
			return fmt.Errorf("route %s: duplicate node %q", r.name, n.name)
		}
		seen[n.name] = true
	}
	return nil
}

// build creates fresh nodes for one routing. Node IDs embed the routing key so that
// two instances of a configuration never share an ID.
func (r *RouteBuilder) build(routing domain.Routing) []domain.Node {
	nodes := make([]domain.Node, 0, len(r.nodes))
	for _, spec := range r.nodes {
		id := routing.Configuration.Name
		if spec.name != "" {
			id += "." + spec.name
		}
		id += "#" + string(routing.Key)

		if spec.withView {
			nodes = append(nodes, node.New(id))
		} else {
			nodes = append(nodes, node.NewHeadless(id))
		}
	}
	return nodes
}

func (r *RouteBuilder) buildAction() ports.RoutingAction {
	return ports.BuildFunc(r.build)
}
