package domain

import "fmt"

// TransitionDescriptor names one navigational change by the configurations that were
// active before and after it. It correlates transactions for interruption matching.
type TransitionDescriptor struct {
	From []Configuration `json:"from,omitempty"`
	To   []Configuration `json:"to,omitempty"`

	none bool
}

// NoTransition is used for changes that never take part in interruption matching,
// such as restoring saved state.
var NoTransition = TransitionDescriptor{none: true}

// Describe builds a descriptor for a change from one active set to another.
func Describe(from, to []Configuration) TransitionDescriptor {
	return TransitionDescriptor{From: from, To: to}
}

// IsNone reports whether the descriptor is NoTransition.
func (d TransitionDescriptor) IsNone() bool {
	return d.none
}

// Reverse swaps From and To.
func (d TransitionDescriptor) Reverse() TransitionDescriptor {
	if d.none {
		return d
	}
	return TransitionDescriptor{From: d.To, To: d.From}
}

// Equal compares descriptors by value.
func (d TransitionDescriptor) Equal(other TransitionDescriptor) bool {
	if d.none || other.none {
		return d.none == other.none
	}
	return EqualConfigurations(d.From, other.From) && EqualConfigurations(d.To, other.To)
}

// IsReverseOf is true when d undoes other exactly.
func (d TransitionDescriptor) IsReverseOf(other TransitionDescriptor) bool {
	if d.none || other.none {
		return false
	}
	return EqualConfigurations(d.From, other.To) && EqualConfigurations(d.To, other.From)
}

// IsContinuationOf is true when d starts where other ends.
func (d TransitionDescriptor) IsContinuationOf(other TransitionDescriptor) bool {
	if d.none || other.none {
		return false
	}
	return EqualConfigurations(d.From, other.To)
}

func (d TransitionDescriptor) String() string {
	if d.none {
		return "none"
	}
	return fmt.Sprintf("%v -> %v", d.From, d.To)
}

// Direction tells whether an element enters or leaves the screen.
type Direction int

const (
	Enter Direction = iota
	Exit
)

func (d Direction) String() string {
	if d == Exit {
		return "exit"
	}
	return "enter"
}

// TransitionElement is one view taking part in a visual transition.
type TransitionElement struct {
	Configuration Configuration
	Direction     Direction
	// AddedOrRemoved is true when the element enters the pool or leaves it in the
	// same transaction, as opposed to a plain activation change.
	AddedOrRemoved bool
	Identifier     string
	View           View
}

// TransitionPhase is the lifecycle position of an ongoing transition.
type TransitionPhase int

const (
	PhaseCreated TransitionPhase = iota
	PhaseExit
	PhaseEnter
	PhaseFinished
	PhaseReversed
	PhaseJumpedToEnd
	PhaseDisposed
)

func (p TransitionPhase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseExit:
		return "exit"
	case PhaseEnter:
		return "enter"
	case PhaseFinished:
		return "finished"
	case PhaseReversed:
		return "reversed"
	case PhaseJumpedToEnd:
		return "jumped_to_end"
	case PhaseDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// IsTerminal reports whether no further callbacks can happen in this phase.
func (p TransitionPhase) IsTerminal() bool {
	return p >= PhaseFinished
}

// OngoingTransition is a visual transition in flight, tracked by the pool.
type OngoingTransition interface {
	Descriptor() TransitionDescriptor
	Direction() Direction
	Phase() TransitionPhase
	Reverse()
	JumpToEnd()
	Dispose()
}
