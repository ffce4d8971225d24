package runtime

import (
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// env is what actions need from their pool.
type env struct {
	parent ports.ParentNode
	emit   func(domain.Effect)
	state  func() domain.WorkingState
}

// action is one command applied to one resolved element.
//
// result is emitted as soon as the action is built. The other steps run in order
// around the visual transition: onBefore, then elements are collected, onTransition
// when animations start, onFinish when they land. onReverse replaces onFinish when
// the transition is played back.
type action interface {
	key() domain.RoutingKey
	result() domain.Effect
	onBefore()
	elements() []domain.TransitionElement
	onTransition()
	onFinish()
	onReverse()
}

type addAction struct {
	env *env
	ctx domain.RoutingContext
}

func (a *addAction) key() domain.RoutingKey { return a.ctx.Routing.Key }

func (a *addAction) result() domain.Effect {
	return domain.IndividualEffect(domain.EffectAdded, a.key(), a.ctx)
}

func (a *addAction) onBefore() {
	for _, n := range a.ctx.Nodes {
		a.env.parent.AttachChildNode(n)
	}
	if a.env.state().IsPendingRemoval(a.key()) {
		a.env.emit(domain.IndividualEffect(domain.EffectPendingRemovalFalse, a.key(), domain.RoutingContext{}))
	}
}

func (a *addAction) elements() []domain.TransitionElement { return nil }
func (a *addAction) onTransition() {}
func (a *addAction) onFinish() {}
func (a *addAction) onReverse() {}

type activateAction struct {
	env            *env
	ctx            domain.RoutingContext
	level          domain.ActivationState
	addedOrRemoved bool

	attached []domain.Node
}

func (a *activateAction) key() domain.RoutingKey { return a.ctx.Routing.Key }

func (a *activateAction) result() domain.Effect {
	state := domain.Active
	if a.level == domain.Sleeping {
		state = domain.Sleeping
	}
	return domain.IndividualEffect(domain.EffectActivated, a.key(), a.ctx.WithActivationState(state))
}

// onBefore attaches the views that are not attached yet. Sleeping pools keep views
// detached until they wake up.
func (a *activateAction) onBefore() {
	if a.level == domain.Sleeping {
		return
	}
	for _, n := range a.ctx.Nodes {
		if n.View() == nil || a.env.parent.IsChildViewAttached(n) {
			continue
		}
		a.env.parent.AttachChildNode(n)
		a.env.parent.AttachChildView(n)
		a.attached = append(a.attached, n)
	}
}

func (a *activateAction) elements() []domain.TransitionElement {
	out := make([]domain.TransitionElement, 0, len(a.attached))
	for _, n := range a.attached {
		out = append(out, element(a.ctx, n, domain.Enter, a.addedOrRemoved))
	}
	return out
}

func (a *activateAction) onTransition() {
	for _, n := range a.attached {
		n.View().SetVisible(true)
	}
}

func (a *activateAction) onFinish() {}

func (a *activateAction) onReverse() {
	for _, n := range a.attached {
		a.env.parent.DetachChildView(n)
		n.View().SetVisible(true)
	}
}

type deactivateAction struct {
	env            *env
	ctx            domain.RoutingContext
	addedOrRemoved bool
}

func (a *deactivateAction) key() domain.RoutingKey { return a.ctx.Routing.Key }

func (a *deactivateAction) result() domain.Effect {
	return domain.IndividualEffect(domain.EffectDeactivated, a.key(), a.ctx.WithActivationState(domain.Inactive))
}

func (a *deactivateAction) onBefore() {
	a.env.emit(domain.IndividualEffect(domain.EffectPendingDeactivateTrue, a.key(), domain.RoutingContext{}))
}

func (a *deactivateAction) elements() []domain.TransitionElement {
	return exitElements(a.env.parent, a.ctx, a.addedOrRemoved)
}

func (a *deactivateAction) onTransition() {}

func (a *deactivateAction) onFinish() {
	for _, n := range a.ctx.Nodes {
		a.env.parent.DetachChildView(n)
	}
	a.env.emit(domain.IndividualEffect(domain.EffectPendingDeactivateFalse, a.key(), domain.RoutingContext{}))
}

func (a *deactivateAction) onReverse() {
	a.env.emit(domain.IndividualEffect(domain.EffectPendingDeactivateFalse, a.key(), domain.RoutingContext{}))
}

type removeAction struct {
	env *env
	ctx domain.RoutingContext
}

func (a *removeAction) key() domain.RoutingKey { return a.ctx.Routing.Key }

func (a *removeAction) result() domain.Effect {
	return domain.IndividualEffect(domain.EffectPendingRemovalTrue, a.key(), domain.RoutingContext{})
}

func (a *removeAction) onBefore() {}

func (a *removeAction) elements() []domain.TransitionElement {
	return exitElements(a.env.parent, a.ctx, true)
}

func (a *removeAction) onTransition() {}

func (a *removeAction) onFinish() {
	for _, n := range a.ctx.Nodes {
		a.env.parent.DetachChildView(n)
		a.env.parent.DetachChildNode(n)
	}
	a.env.emit(domain.IndividualEffect(domain.EffectRemoved, a.key(), domain.RoutingContext{}))
	a.env.emit(domain.IndividualEffect(domain.EffectPendingRemovalFalse, a.key(), domain.RoutingContext{}))
}

func (a *removeAction) onReverse() {
	a.env.emit(domain.IndividualEffect(domain.EffectPendingRemovalFalse, a.key(), domain.RoutingContext{}))
}

func element(ctx domain.RoutingContext, n domain.Node, dir domain.Direction, addedOrRemoved bool) domain.TransitionElement {
	return domain.TransitionElement{
		Configuration:  ctx.Routing.Configuration,
		Direction:      dir,
		AddedOrRemoved: addedOrRemoved,
		Identifier:     n.ID(),
		View:           n.View(),
	}
}

func exitElements(parent ports.ParentNode, ctx domain.RoutingContext, addedOrRemoved bool) []domain.TransitionElement {
	var out []domain.TransitionElement
	for _, n := range ctx.Nodes {
		if n.View() != nil && parent.IsChildViewAttached(n) {
			out = append(out, element(ctx, n, domain.Exit, addedOrRemoved))
		}
	}
	return out
}

// collectElements gathers the transition elements of all actions, keeping the first
// occurrence of each (node, direction) pair.
func collectElements(actions []action) []domain.TransitionElement {
	type id struct {
		node string
		dir  domain.Direction
	}
	seen := make(map[id]bool)
	var out []domain.TransitionElement
	for _, a := range actions {
		for _, e := range a.elements() {
			k := id{e.Identifier, e.Direction}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, e)
		}
	}
	return out
}
