// Package runtime executes routing transactions against a pool of routing elements.
//
// A Pool owns the WorkingState and processes one Transaction at a time. Its Actor
// resolves routing keys to nodes, turns commands into actions, emits the resulting
// effects and drives the visual transition, deferring the transition handler by one
// frame of the host loop so entering views are laid out before they show.
package runtime
