package runtime

import (
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// keyResolver resolves routing keys for the duration of one transaction.
// A key is resolved at most once: later lookups return the cached context.
type keyResolver struct {
	env      *env
	pool     map[domain.RoutingKey]domain.RoutingContext
	defaults map[domain.RoutingKey]domain.RoutingContext
	routing  ports.RoutingResolver
	cache    map[domain.RoutingKey]domain.RoutingContext
}

func newKeyResolver(e *env, state domain.WorkingState, defaults map[domain.RoutingKey]domain.RoutingContext, routing ports.RoutingResolver) *keyResolver {
	return &keyResolver{
		env:      e,
		pool:     state.Pool,
		defaults: defaults,
		routing:  routing,
		cache:    make(map[domain.RoutingKey]domain.RoutingContext),
	}
}

// resolve returns the resolved context for key. When the key had to be resolved
// now, it also returns the action attaching the freshly built nodes.
// It panics with a *domain.PreconditionError for keys that are neither in the pool
// nor added by the transaction.
func (r *keyResolver) resolve(key domain.RoutingKey) (domain.RoutingContext, *addAction) {
	if ctx, ok := r.cache[key]; ok {
		return ctx, nil
	}

	ctx, ok := r.pool[key]
	if !ok {
		ctx, ok = r.defaults[key]
	}
	if !ok {
		panic(&domain.PreconditionError{Op: "resolve", Key: key, Err: domain.ErrUnknownRoutingKey})
	}

	var add *addAction
	if !ctx.IsResolved() {
		nodes := r.routing.Resolve(ctx.Routing).BuildNodes(ctx.Routing)
		ctx = ctx.Resolve(nodes)
		add = &addAction{env: r.env, ctx: ctx}
	}

	r.cache[key] = ctx
	return ctx, add
}
