package domain

import (
	"maps"
	"slices"
)

// WorkingState is the authoritative pool of routing elements.
//
// A key in PendingRemoval is still in Pool until its removal completes.
// OngoingTransitions holds every visual transition currently in flight.
type WorkingState struct {
	Pool               map[RoutingKey]RoutingContext
	PendingDeactivate  map[RoutingKey]struct{}
	PendingRemoval     map[RoutingKey]struct{}
	OngoingTransitions []OngoingTransition
	ActivationLevel    ActivationState
}

// NewWorkingState creates an empty, active pool.
func NewWorkingState() WorkingState {
	return WorkingState{
		Pool:              make(map[RoutingKey]RoutingContext),
		PendingDeactivate: make(map[RoutingKey]struct{}),
		PendingRemoval:    make(map[RoutingKey]struct{}),
		ActivationLevel:   Active,
	}
}

// Clone returns a copy that can be changed without affecting s.
func (s WorkingState) Clone() WorkingState {
	next := s
	next.Pool = maps.Clone(s.Pool)
	next.PendingDeactivate = maps.Clone(s.PendingDeactivate)
	next.PendingRemoval = maps.Clone(s.PendingRemoval)
	next.OngoingTransitions = slices.Clone(s.OngoingTransitions)
	if next.Pool == nil {
		next.Pool = make(map[RoutingKey]RoutingContext)
	}
	if next.PendingDeactivate == nil {
		next.PendingDeactivate = make(map[RoutingKey]struct{})
	}
	if next.PendingRemoval == nil {
		next.PendingRemoval = make(map[RoutingKey]struct{})
	}
	return next
}

// IsPendingRemoval reports whether key is waiting for its removal to complete.
func (s WorkingState) IsPendingRemoval(key RoutingKey) bool {
	_, ok := s.PendingRemoval[key]
	return ok
}

// IsPendingDeactivate reports whether key is waiting for its deactivation to complete.
func (s WorkingState) IsPendingDeactivate(key RoutingKey) bool {
	_, ok := s.PendingDeactivate[key]
	return ok
}

// Active lists the keys whose elements are Active or Sleeping, sorted.
func (s WorkingState) Active() []RoutingKey {
	var keys []RoutingKey
	for k, c := range s.Pool {
		if c.ActivationState.IsActive() {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// SavedElement is the persisted form of a pool element.
type SavedElement struct {
	Routing         Routing         `json:"routing"`
	ActivationState ActivationState `json:"activation_state"`
}

// SavedState is the serialisable snapshot of a pool and the back stack feeding it.
type SavedState struct {
	Pool            map[RoutingKey]SavedElement `json:"pool,omitempty"`
	ActivationLevel ActivationState             `json:"activation_level"`
	BackStack       []RoutingHistoryElement     `json:"back_stack,omitempty"`

	// Sealed is an opaque payload reserved for persistence middleware.
	Sealed string `json:"sealed,omitempty"`
}

// ToSavedState snapshots the pool. Node handles and pending sets are not persisted.
// Elements pending removal are dropped since their removal was already decided.
func (s WorkingState) ToSavedState() SavedState {
	saved := SavedState{
		Pool:            make(map[RoutingKey]SavedElement, len(s.Pool)),
		ActivationLevel: s.ActivationLevel,
	}
	for k, c := range s.Pool {
		if s.IsPendingRemoval(k) {
			continue
		}
		saved.Pool[k] = SavedElement{Routing: c.Routing, ActivationState: c.ActivationState}
	}
	return saved
}

// ToWorkingState rebuilds a pool of Unresolved elements from the snapshot.
func (s SavedState) ToWorkingState() WorkingState {
	state := NewWorkingState()
	for k, e := range s.Pool {
		state.Pool[k] = Unresolved(e.ActivationState, e.Routing)
	}
	state.ActivationLevel = s.ActivationLevel
	if state.ActivationLevel == Inactive {
		state.ActivationLevel = Active
	}
	return state
}

// Clone returns a deep copy of the snapshot.
func (s *SavedState) Clone() *SavedState {
	if s == nil {
		return nil
	}
	out := &SavedState{ActivationLevel: s.ActivationLevel, Sealed: s.Sealed}
	if s.Pool != nil {
		out.Pool = make(map[RoutingKey]SavedElement, len(s.Pool))
		for k, e := range s.Pool {
			e.Routing.Configuration.Params = maps.Clone(e.Routing.Configuration.Params)
			out.Pool[k] = e
		}
	}
	if s.BackStack != nil {
		out.BackStack = make([]RoutingHistoryElement, len(s.BackStack))
		for i, e := range s.BackStack {
			e = e.Clone()
			e.Routing.Configuration.Params = maps.Clone(e.Routing.Configuration.Params)
			for j := range e.Overlays {
				e.Overlays[j].Configuration.Params = maps.Clone(e.Overlays[j].Configuration.Params)
			}
			out.BackStack[i] = e
		}
	}
	return out
}
