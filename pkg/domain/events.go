package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventTransaction        EventType = "transaction"
	EventEffect             EventType = "effect"
	EventTransitionStarted  EventType = "transition_started"
	EventTransitionFinished EventType = "transition_finished"
	EventInterrupted        EventType = "transition_interrupted"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransactionEvent is raised when the pool starts processing a transaction.
type TransactionEvent struct {
	EventBase
	Transaction Transaction `json:"-"`
	Commands    int         `json:"commands"`
	Global      string      `json:"global,omitempty"`
}

// EffectEvent is raised after an effect has been reduced into the pool.
type EffectEvent struct {
	EventBase
	Effect   Effect `json:"-"`
	Kind     string `json:"kind"`
	PoolSize int    `json:"pool_size"`
}

// TransitionEvent is raised at transition boundaries and interruptions.
type TransitionEvent struct {
	EventBase
	Descriptor TransitionDescriptor `json:"descriptor"`
	Phase      TransitionPhase      `json:"phase"`
	// Outcome is set on interruptions: "reversed" or "continued".
	Outcome string `json:"outcome,omitempty"`
}

// LifecycleHooks defines callbacks for routing observability.
// All hooks run on the routing thread and must not block.
type LifecycleHooks struct {
	OnTransaction           func(*TransactionEvent)
	OnEffect                func(*EffectEvent)
	OnTransitionStarted     func(*TransitionEvent)
	OnTransitionFinished    func(*TransitionEvent)
	OnTransitionInterrupted func(*TransitionEvent)
}
