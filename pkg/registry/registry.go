package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// Registry maps configuration names to the actions that build them.
// It implements ports.RoutingResolver.
type Registry struct {
	mu       sync.RWMutex
	actions  map[string]ports.RoutingAction
	fallback ports.RoutingAction
}

// NewRegistry creates a new empty registry.
// Unregistered configurations resolve to ports.Noop unless a fallback is set.
func NewRegistry() *Registry {
	return &Registry{
		actions:  make(map[string]ports.RoutingAction),
		fallback: ports.Noop,
	}
}

// Register adds an action for a configuration name.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(name string, action ports.RoutingAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = action
}

// RegisterFunc is a shorthand for Register with a ports.BuildFunc.
func (r *Registry) RegisterFunc(name string, fn func(domain.Routing) []domain.Node) {
	r.Register(name, ports.BuildFunc(fn))
}

// SetFallback sets the action used for unregistered names.
func (r *Registry) SetFallback(action ports.RoutingAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = action
}

// Lookup returns the action registered for name.
func (r *Registry) Lookup(name string) (ports.RoutingAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("no routing action registered for %q", name)
	}
	return action, nil
}

// Resolve implements ports.RoutingResolver.
func (r *Registry) Resolve(routing domain.Routing) ports.RoutingAction {
	if action, err := r.Lookup(routing.Configuration.Name); err == nil {
		return action
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Names lists the registered configuration names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	return names
}
