package runtime

import (
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// ongoingTransition drives one transaction's actions through its animations.
//
// It moves Created -> Exit -> Enter -> Finished. Reverse plays the animations back
// and lands in Reversed; JumpToEnd lands immediately in JumpedToEnd (or Reversed when
// already played back); Dispose stops everything without landing.
// A transition is registered with the pool from creation, so it can be interrupted
// while it still waits for its first frame.
type ongoingTransition struct {
	descriptor domain.TransitionDescriptor
	direction  domain.Direction
	phase      domain.TransitionPhase
	reversed   bool
	revealed   bool

	pair      ports.TransitionPair
	actions   []action
	followers []action
	emit      func(domain.Effect)
}

var _ domain.OngoingTransition = (*ongoingTransition)(nil)

func newOngoingTransition(descriptor domain.TransitionDescriptor, actions []action, emit func(domain.Effect)) *ongoingTransition {
	return &ongoingTransition{
		descriptor: descriptor,
		direction:  domain.Enter,
		phase:      domain.PhaseCreated,
		actions:    actions,
		emit:       emit,
	}
}

func (t *ongoingTransition) Descriptor() domain.TransitionDescriptor { return t.descriptor }
func (t *ongoingTransition) Direction() domain.Direction { return t.direction }
func (t *ongoingTransition) Phase() domain.TransitionPhase { return t.phase }

// begin starts the animations created by the transition handler.
func (t *ongoingTransition) begin(pair ports.TransitionPair) {
	if t.phase.IsTerminal() {
		return
	}
	t.pair = pair
	t.reveal()
	t.phase = domain.PhaseExit
	if t.pair.Exiting == nil {
		t.onExitEnd()
		return
	}
	t.pair.Exiting.Start(t.onExitEnd)
}

func (t *ongoingTransition) onExitEnd() {
	if t.phase.IsTerminal() {
		return
	}
	if t.reversed {
		t.landReversed()
		return
	}
	t.phase = domain.PhaseEnter
	if t.pair.Entering == nil {
		t.finish(domain.PhaseFinished)
		return
	}
	t.pair.Entering.Start(t.onEnterEnd)
}

func (t *ongoingTransition) onEnterEnd() {
	if t.phase.IsTerminal() {
		return
	}
	if !t.reversed {
		t.finish(domain.PhaseFinished)
		return
	}
	// Enter has been played back, now play Exit back.
	t.phase = domain.PhaseExit
	if t.pair.Exiting == nil {
		t.landReversed()
		return
	}
	t.pair.Exiting.Reverse()
	t.pair.Exiting.Start(t.onExitEnd)
}

// Reverse plays the transition back. It is honoured once.
func (t *ongoingTransition) Reverse() {
	if t.reversed || t.phase.IsTerminal() {
		return
	}
	t.reversed = true
	t.direction = domain.Exit

	switch t.phase {
	case domain.PhaseCreated:
		t.landReversed()
	case domain.PhaseExit:
		if t.pair.Exiting != nil {
			t.pair.Exiting.Reverse()
		}
	case domain.PhaseEnter:
		if t.pair.Entering != nil {
			t.pair.Entering.Reverse()
		}
	}
}

// JumpToEnd lands the transition without waiting for its animations.
func (t *ongoingTransition) JumpToEnd() {
	if t.phase.IsTerminal() {
		return
	}
	reversed := t.reversed
	// Terminal before End so that animation callbacks are ignored.
	t.phase = domain.PhaseJumpedToEnd
	if t.pair.Exiting != nil {
		t.pair.Exiting.End()
	}
	if t.pair.Entering != nil {
		t.pair.Entering.End()
	}

	if reversed {
		t.landReversed()
		return
	}
	t.finish(domain.PhaseJumpedToEnd)
}

// Dispose releases the animations and drops the transition from the pool. No action
// step runs afterwards, so pending deactivations and removals stay as they are.
func (t *ongoingTransition) Dispose() {
	if t.phase.IsTerminal() {
		return
	}
	t.phase = domain.PhaseDisposed
	t.disposeAnimations()
	t.emit(domain.TransitionEffect(domain.EffectTransitionFinished, t))
}

// abort reverses the transition and queues actions to run once it has landed.
func (t *ongoingTransition) abort(followers []action) {
	t.followers = append(t.followers, followers...)
	t.Reverse()
}

func (t *ongoingTransition) canReverse() bool {
	return !t.reversed && !t.phase.IsTerminal()
}

func (t *ongoingTransition) reveal() {
	if t.revealed {
		return
	}
	t.revealed = true
	for _, a := range t.actions {
		a.onTransition()
	}
}

func (t *ongoingTransition) finish(phase domain.TransitionPhase) {
	t.phase = phase
	t.reveal()
	for _, a := range t.actions {
		a.onFinish()
	}
	t.disposeAnimations()
	t.emit(domain.TransitionEffect(domain.EffectTransitionFinished, t))
}

func (t *ongoingTransition) landReversed() {
	t.phase = domain.PhaseReversed
	for i := len(t.actions) - 1; i >= 0; i-- {
		t.actions[i].onReverse()
	}
	runSynchronously(t.followers)
	t.disposeAnimations()
	t.emit(domain.TransitionEffect(domain.EffectTransitionFinished, t))
}

func (t *ongoingTransition) disposeAnimations() {
	if t.pair.Exiting != nil {
		t.pair.Exiting.Dispose()
	}
	if t.pair.Entering != nil {
		t.pair.Entering.Dispose()
	}
}

// runSynchronously runs every step of the actions without animation.
func runSynchronously(actions []action) {
	for _, a := range actions {
		a.onBefore()
	}
	for _, a := range actions {
		a.onTransition()
	}
	for _, a := range actions {
		a.onFinish()
	}
}
