/*
Package ribs keeps a tree of UI nodes in sync with a navigation back stack.

A back stack is a list of configurations, each with optional overlays. The last
element and its overlays are active: their nodes are attached and their views are on
screen. The rest of the stack stays in a routing pool, Inactive, ready to come back.

# Concept

Navigation is expressed as back stack operations (Push, Pop, Replace, NewRoot,
PushOverlay, PopOverlay, SingleTop). Each accepted operation is diffed into one
transaction of Add, Activate, Deactivate and Remove commands and handed to the pool.
The pool builds nodes lazily through a RoutingResolver, attaches them to the parent
node and, when a TransitionHandler is configured, animates entering and exiting views.

Interrupting an animated change with its exact opposite (going back while a push is
still animating) plays the running transition back instead of starting a new one.

# Persistence

SaveInstanceState snapshots the pool and the back stack into a domain.SavedState.
The capsule package stores snapshots under stable keys in memory, on disk or in Redis,
optionally encrypted:

	mgr := capsule.NewManager(file.New(""))
	saved, err := ribs.Restore(ctx, mgr, "main")
	if err != nil {
		return err
	}
	router := ribs.New(resolver, root,
		ribs.WithInitialConfiguration(domain.Config("Home")),
		ribs.WithSavedState(saved),
	)
	if err := router.Start(); err != nil {
		return err
	}
	defer router.Persist(ctx, mgr, "main")

# Threading

A Router is single-threaded. Hosts without a UI thread of their own can use
loop.Loop, which also serves as the Scheduler deferring transitions by one frame.
*/
package ribs
