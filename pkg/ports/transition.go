package ports

import "github.com/aretw0/ribs/pkg/domain"

// Animation is one direction of a visual transition.
//
// Start plays from the current progress in the current direction and calls onEnd once
// it lands. Reverse flips the direction of a running animation. End jumps to the
// landing point of the current direction and calls onEnd. Dispose releases resources
// without calling onEnd.
type Animation interface {
	Start(onEnd func())
	Reverse()
	End()
	Dispose()
}

// TransitionPair groups the animations produced for one transaction.
// Either side may be nil when no element moves in that direction.
type TransitionPair struct {
	Exiting  Animation
	Entering Animation
}

// TransitionHandler creates the animations for a set of elements.
// It is invoked once per transaction that is not processed synchronously.
type TransitionHandler interface {
	OnTransition(elements []domain.TransitionElement) TransitionPair
}

// TransitionHandlerFunc adapts a function to TransitionHandler.
type TransitionHandlerFunc func(elements []domain.TransitionElement) TransitionPair

func (f TransitionHandlerFunc) OnTransition(elements []domain.TransitionElement) TransitionPair {
	return f(elements)
}
