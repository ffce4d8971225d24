package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// Actor executes transactions against the current working state.
// It never changes the state itself: every change goes through emit.
type Actor struct {
	env       *env
	resolver  ports.RoutingResolver
	handler   ports.TransitionHandler
	scheduler ports.Scheduler
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	disposed  bool
}

// Execute runs one transaction to the point where only its visual transition,
// if any, is left.
func (a *Actor) Execute(tx domain.Transaction) {
	if tx.IsGlobal() {
		a.executeGlobal(tx.Global)
		return
	}
	a.executeCommands(tx)
}

func (a *Actor) executeGlobal(cmd domain.GlobalCommand) {
	state := a.env.state()
	updated := make(map[domain.RoutingKey]domain.RoutingContext)

	switch cmd {
	case domain.GlobalSleep:
		// Nothing animates in the background.
		for _, t := range state.OngoingTransitions {
			t.JumpToEnd()
		}
		state = a.env.state()
		for k, c := range state.Pool {
			if c.ActivationState == domain.Active {
				updated[k] = c.WithActivationState(domain.Sleeping)
			}
		}

	case domain.GlobalWakeUp:
		for k, c := range state.Pool {
			if c.ActivationState != domain.Sleeping {
				continue
			}
			updated[k] = c.WithActivationState(domain.Active)
			for _, n := range c.Nodes {
				if n.View() != nil && a.env.parent.IsChildAttached(n) && !a.env.parent.IsChildViewAttached(n) {
					a.env.parent.AttachChildView(n)
				}
			}
		}

	case domain.GlobalSaveInstanceState:
		for k, c := range state.Pool {
			if c.IsResolved() {
				updated[k] = c
			}
		}
	}

	a.env.emit(domain.GlobalEffect(cmd, updated))
}

func (a *Actor) executeCommands(tx domain.Transaction) {
	aborted := a.checkOngoingTransitions(tx.Descriptor)

	state := a.env.state()
	defaults := make(map[domain.RoutingKey]domain.RoutingContext)
	for _, cmd := range tx.Commands {
		if cmd.Kind != domain.CommandAdd {
			continue
		}
		if _, ok := state.Pool[cmd.Routing.Key]; !ok {
			defaults[cmd.Routing.Key] = domain.Unresolved(domain.Inactive, cmd.Routing)
		}
	}

	actions := a.buildActions(newKeyResolver(a.env, state, defaults, a.resolver), state.ActivationLevel, tx)

	// The pool reflects the transaction even when its transition is aborted.
	for _, act := range actions {
		a.env.emit(act.result())
	}

	if aborted != nil {
		a.logger.Debug("transaction aborted, following reversed transition",
			"descriptor", tx.Descriptor.String(), "actions", len(actions))
		aborted.abort(actions)
		return
	}

	if state.ActivationLevel == domain.Sleeping || a.handler == nil || tx.Descriptor.IsNone() {
		runSynchronously(actions)
		return
	}

	a.startTransition(tx.Descriptor, actions)
}

func (a *Actor) buildActions(r *keyResolver, level domain.ActivationState, tx domain.Transaction) []action {
	actions := make([]action, 0, len(tx.Commands))
	for _, cmd := range tx.Commands {
		key := cmd.Routing.Key
		ctx, add := r.resolve(key)
		if add != nil {
			actions = append(actions, add)
		}

		switch cmd.Kind {
		case domain.CommandAdd:
			if add == nil {
				actions = append(actions, &addAction{env: a.env, ctx: ctx})
			}
		case domain.CommandActivate:
			actions = append(actions, &activateAction{
				env:            a.env,
				ctx:            ctx,
				level:          level,
				addedOrRemoved: tx.Has(domain.CommandAdd, key),
			})
		case domain.CommandDeactivate:
			actions = append(actions, &deactivateAction{
				env:            a.env,
				ctx:            ctx,
				addedOrRemoved: tx.Has(domain.CommandRemove, key),
			})
		case domain.CommandRemove:
			actions = append(actions, &removeAction{env: a.env, ctx: ctx})
		}
	}
	return actions
}

// checkOngoingTransitions settles in-flight transitions before a new transaction.
// An exact reverse is returned to be played back; continuations are jumped to end.
func (a *Actor) checkOngoingTransitions(descriptor domain.TransitionDescriptor) *ongoingTransition {
	if descriptor.IsNone() {
		return nil
	}

	var reversed *ongoingTransition
	for _, t := range a.env.state().OngoingTransitions {
		ot, ok := t.(*ongoingTransition)
		switch {
		case reversed == nil && ok && ot.canReverse() && descriptor.IsReverseOf(t.Descriptor()):
			reversed = ot
			a.interrupted(t, "reversed")
		case descriptor.IsContinuationOf(t.Descriptor()) || descriptor.Equal(t.Descriptor()):
			a.interrupted(t, "continued")
			t.JumpToEnd()
		}
	}
	return reversed
}

func (a *Actor) interrupted(t domain.OngoingTransition, outcome string) {
	a.logger.Debug("transition interrupted",
		"descriptor", t.Descriptor().String(), "phase", t.Phase().String(), "outcome", outcome)
	if a.hooks.OnTransitionInterrupted != nil {
		a.hooks.OnTransitionInterrupted(&domain.TransitionEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventInterrupted},
			Descriptor: t.Descriptor(),
			Phase:      t.Phase(),
			Outcome:    outcome,
		})
	}
}

// startTransition prepares the views and hands the elements to the transition
// handler on the next frame, once entering views had a chance to be laid out.
func (a *Actor) startTransition(descriptor domain.TransitionDescriptor, actions []action) {
	for _, act := range actions {
		act.onBefore()
	}
	elements := collectElements(actions)
	for _, e := range elements {
		if e.Direction == domain.Enter && e.View != nil {
			e.View.SetVisible(false)
		}
	}

	t := newOngoingTransition(descriptor, actions, a.env.emit)
	a.env.emit(domain.TransitionEffect(domain.EffectTransitionStarted, t))

	a.post(func() {
		if a.disposed || t.Phase().IsTerminal() {
			return
		}
		t.begin(a.handler.OnTransition(elements))
	})
}

func (a *Actor) post(fn func()) {
	if a.scheduler == nil {
		fn()
		return
	}
	a.scheduler.Post(fn)
}

func (a *Actor) dispose() {
	a.disposed = true
}
