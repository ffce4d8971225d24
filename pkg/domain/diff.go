package domain

import "slices"

// PoolDiff represents the changes between two pool snapshots.
// It is designed to be serialized to JSON for partial updates on inspecting clients.
type PoolDiff struct {
	// Added lists keys present only in the new pool.
	Added []RoutingKey `json:"added,omitempty"`

	// Removed lists keys present only in the old pool.
	Removed []RoutingKey `json:"removed,omitempty"`

	// Changed maps keys whose activation state changed to their new state.
	Changed map[RoutingKey]ActivationState `json:"changed,omitempty"`

	// ActivationLevel is set when the global level changed.
	ActivationLevel *ActivationState `json:"activation_level,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, every element of newState is reported as added (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *WorkingState) *PoolDiff {
	if newState == nil {
		return nil
	}

	diff := &PoolDiff{}
	var oldPool map[RoutingKey]RoutingContext
	if oldState != nil {
		oldPool = oldState.Pool
	}

	for k, c := range newState.Pool {
		prev, ok := oldPool[k]
		switch {
		case !ok:
			diff.Added = append(diff.Added, k)
		case prev.ActivationState != c.ActivationState:
			if diff.Changed == nil {
				diff.Changed = make(map[RoutingKey]ActivationState)
			}
			diff.Changed[k] = c.ActivationState
		}
	}
	for k := range oldPool {
		if _, ok := newState.Pool[k]; !ok {
			diff.Removed = append(diff.Removed, k)
		}
	}
	slices.Sort(diff.Added)
	slices.Sort(diff.Removed)

	if oldState == nil || oldState.ActivationLevel != newState.ActivationLevel {
		level := newState.ActivationLevel
		diff.ActivationLevel = &level
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *PoolDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Changed) == 0 &&
		d.ActivationLevel == nil
}
