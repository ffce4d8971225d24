/*
Package domain contains the core routing model and the pure state transitions of the ribs
routing state machine.

It defines what should be on screen (Configurations and the Routings that carry them),
how the pool of child elements is tracked (RoutingContext, WorkingState), what can be
asked of the pool (Transaction, Command) and what the pool reports back (Effect). This
package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Configuration: value describing a navigational state (a screen variant).
  - Routing: one instance of a Configuration in the pool, identified by a RoutingKey.
  - RoutingContext: Unresolved or Resolved (with node handles) plus an ActivationState.
  - WorkingState: the authoritative pool, pending sets and ongoing transitions.
  - SavedState: the serialisable snapshot of a WorkingState and its back stack.
  - Effect: a single state change emitted by the actor and applied by Reduce.
*/
package domain
