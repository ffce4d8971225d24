package domain

import "fmt"

// EffectKind enumerates the state changes the reducer understands.
type EffectKind int

const (
	EffectGlobal EffectKind = iota
	EffectAdded
	EffectRemoved
	EffectActivated
	EffectDeactivated
	EffectPendingDeactivateTrue
	EffectPendingDeactivateFalse
	EffectPendingRemovalTrue
	EffectPendingRemovalFalse
	EffectTransitionStarted
	EffectTransitionFinished
)

func (k EffectKind) String() string {
	switch k {
	case EffectGlobal:
		return "global"
	case EffectAdded:
		return "added"
	case EffectRemoved:
		return "removed"
	case EffectActivated:
		return "activated"
	case EffectDeactivated:
		return "deactivated"
	case EffectPendingDeactivateTrue:
		return "pending_deactivate_true"
	case EffectPendingDeactivateFalse:
		return "pending_deactivate_false"
	case EffectPendingRemovalTrue:
		return "pending_removal_true"
	case EffectPendingRemovalFalse:
		return "pending_removal_false"
	case EffectTransitionStarted:
		return "transition_started"
	case EffectTransitionFinished:
		return "transition_finished"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// IsIndividual is true for effects that target a single pool key.
func (k EffectKind) IsIndividual() bool {
	return k >= EffectAdded && k <= EffectPendingRemovalFalse
}

// Effect is a single change applied to the WorkingState by Reduce.
//
// Which fields are set depends on Kind:
//   - Global: Command and Elements (the updated pool snapshot).
//   - Individual kinds: Key, and Element for Added/Activated/Deactivated.
//   - TransitionStarted/Finished: Transition.
type Effect struct {
	Kind       EffectKind
	Command    GlobalCommand
	Elements   map[RoutingKey]RoutingContext
	Key        RoutingKey
	Element    RoutingContext
	Transition OngoingTransition
}

// GlobalEffect reports the pool snapshot produced by a global command.
func GlobalEffect(cmd GlobalCommand, elements map[RoutingKey]RoutingContext) Effect {
	return Effect{Kind: EffectGlobal, Command: cmd, Elements: elements}
}

// IndividualEffect targets a single key; element may be the zero value for the
// pending and removal kinds.
func IndividualEffect(kind EffectKind, key RoutingKey, element RoutingContext) Effect {
	return Effect{Kind: kind, Key: key, Element: element}
}

// TransitionEffect reports a transition lifecycle boundary.
func TransitionEffect(kind EffectKind, t OngoingTransition) Effect {
	return Effect{Kind: kind, Transition: t}
}

func (e Effect) String() string {
	switch {
	case e.Kind == EffectGlobal:
		return fmt.Sprintf("global(%s, %d elements)", e.Command, len(e.Elements))
	case e.Kind.IsIndividual():
		if e.Element.Routing.Key != "" {
			return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Key, e.Element)
		}
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case e.Transition != nil:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Transition.Descriptor())
	default:
		return e.Kind.String()
	}
}
