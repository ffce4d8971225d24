/*
Package ports defines the driven ports (interfaces) for the ribs routing state machine.

These interfaces decouple the routing core from the host: the node tree it mutates,
the resolver that builds nodes, the transition handler that animates them, the event
loop that defers work by one frame, and the storage that keeps saved state across
process death.

# Key Interfaces

  - ParentNode: the node whose children the pool attaches and detaches.
  - RoutingResolver: maps a Routing to a RoutingAction able to build its nodes.
  - TransitionHandler: turns transition elements into exit and enter animations.
  - Scheduler: posts a callback to the next frame of the host loop.
  - StateStore: persists and loads a SavedState under a stable capsule key.
  - DistributedLocker: provides distributed locking for concurrent capsule access.
*/
package ports
