package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/ribs/pkg/registry"
)

// Builder manages the route declarations.
type Builder struct {
	routes   map[string]*RouteBuilder
	order    []string
	fallback bool
}

// New creates a new route builder.
func New() *Builder {
	return &Builder{
		routes: make(map[string]*RouteBuilder),
	}
}

// Route declares how a configuration name is built.
// If the route already exists, it returns the existing builder.
func (b *Builder) Route(name string) *RouteBuilder {
	if rb, ok := b.routes[name]; ok {
		return rb
	}
	rb := &RouteBuilder{name: name, builder: b}
	b.routes[name] = rb
	b.order = append(b.order, name)
	return rb
}

// Default makes undeclared configurations build a single view node.
func (b *Builder) Default() *Builder {
	b.fallback = true
	return b
}

// Build compiles the declarations into a registry.
func (b *Builder) Build() (*registry.Registry, error) {
	reg := registry.NewRegistry()

	var errs []error
	for _, name := range b.order {
		rb := b.routes[name]
		if err := rb.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		reg.RegisterFunc(name, rb.build)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to build routes: %w", err)
	}

	if b.fallback {
		reg.SetFallback(defaultRoute.buildAction())
	}
	return reg, nil
}

var defaultRoute = &RouteBuilder{nodes: []nodeSpec{{withView: true}}}
