package domain

import "slices"

// Reduce applies one effect and returns the resulting state.
// It never mutates state, so a recorded effect log can be replayed safely.
func Reduce(state WorkingState, effect Effect) WorkingState {
	next := state.Clone()

	switch effect.Kind {
	case EffectGlobal:
		switch effect.Command {
		case GlobalSleep:
			next.ActivationLevel = Sleeping
		case GlobalWakeUp:
			next.ActivationLevel = Active
		}
		for k, c := range effect.Elements {
			next.Pool[k] = c
		}

	case EffectAdded, EffectActivated, EffectDeactivated:
		next.Pool[effect.Key] = effect.Element

	case EffectRemoved:
		delete(next.Pool, effect.Key)

	case EffectPendingDeactivateTrue:
		next.PendingDeactivate[effect.Key] = struct{}{}
	case EffectPendingDeactivateFalse:
		delete(next.PendingDeactivate, effect.Key)
	case EffectPendingRemovalTrue:
		next.PendingRemoval[effect.Key] = struct{}{}
	case EffectPendingRemovalFalse:
		delete(next.PendingRemoval, effect.Key)

	case EffectTransitionStarted:
		if effect.Transition != nil && !slices.Contains(next.OngoingTransitions, effect.Transition) {
			next.OngoingTransitions = append(next.OngoingTransitions, effect.Transition)
		}
	case EffectTransitionFinished:
		next.OngoingTransitions = slices.DeleteFunc(next.OngoingTransitions, func(t OngoingTransition) bool {
			return t == effect.Transition
		})
	}

	return next
}

// ReduceAll folds effects over state in order.
func ReduceAll(state WorkingState, effects ...Effect) WorkingState {
	for _, e := range effects {
		state = Reduce(state, e)
	}
	return state
}
