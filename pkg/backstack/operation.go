package backstack

import (
	"fmt"

	"github.com/aretw0/ribs/pkg/domain"
)

// Operation is a pure transform of a BackStack.
type Operation interface {
	IsApplicable(stack BackStack) bool
	Apply(stack BackStack) BackStack
	fmt.Stringer
}

// Push adds a new content element on top.
// It is not applicable when the current content already shows the configuration.
func Push(c domain.Configuration) Operation { return push{c} }

type push struct{ configuration domain.Configuration }

func (o push) IsApplicable(stack BackStack) bool {
	last, ok := stack.Last()
	return !ok || !last.Routing.Configuration.Equal(o.configuration)
}

func (o push) Apply(stack BackStack) BackStack {
	return append(stack.Clone(), domain.NewHistoryElement(o.configuration))
}

func (o push) String() string { return "push(" + o.configuration.String() + ")" }

// Pop drops the last overlay of the current element or, when it has none, the current
// element itself. A single element without overlays is never popped.
func Pop() Operation { return pop{} }

type pop struct{}

func (pop) IsApplicable(stack BackStack) bool {
	last, ok := stack.Last()
	if !ok {
		return false
	}
	return len(last.Overlays) > 0 || len(stack) > 1
}

func (o pop) Apply(stack BackStack) BackStack {
	if !o.IsApplicable(stack) {
		return stack
	}
	next := stack.Clone()
	last := &next[len(next)-1]
	if len(last.Overlays) > 0 {
		last.Overlays = last.Overlays[:len(last.Overlays)-1]
		return next
	}
	return next[:len(next)-1]
}

func (pop) String() string { return "pop" }

// Replace swaps the current element, with its overlays, for a new one.
func Replace(c domain.Configuration) Operation { return replace{c} }

type replace struct{ configuration domain.Configuration }

func (o replace) IsApplicable(stack BackStack) bool {
	last, ok := stack.Last()
	return ok && !last.Routing.Configuration.Equal(o.configuration)
}

func (o replace) Apply(stack BackStack) BackStack {
	next := stack.Clone()
	if len(next) > 0 {
		next = next[:len(next)-1]
	}
	return append(next, domain.NewHistoryElement(o.configuration))
}

func (o replace) String() string { return "replace(" + o.configuration.String() + ")" }

// NewRoot clears the stack and starts over from a single element.
func NewRoot(c domain.Configuration) Operation { return newRoot{c} }

type newRoot struct{ configuration domain.Configuration }

func (o newRoot) IsApplicable(stack BackStack) bool {
	if len(stack) != 1 {
		return true
	}
	return len(stack[0].Overlays) > 0 || !stack[0].Routing.Configuration.Equal(o.configuration)
}

func (o newRoot) Apply(BackStack) BackStack {
	return BackStack{domain.NewHistoryElement(o.configuration)}
}

func (o newRoot) String() string { return "new_root(" + o.configuration.String() + ")" }

// PushOverlay stacks an overlay on the current element.
func PushOverlay(c domain.Configuration) Operation { return pushOverlay{c} }

type pushOverlay struct{ configuration domain.Configuration }

func (o pushOverlay) IsApplicable(stack BackStack) bool {
	top, ok := stack.topConfiguration()
	return ok && !top.Equal(o.configuration)
}

func (o pushOverlay) Apply(stack BackStack) BackStack {
	if len(stack) == 0 {
		return stack
	}
	next := stack.Clone()
	last := &next[len(next)-1]
	last.Overlays = append(last.Overlays, domain.NewRouting(o.configuration))
	return next
}

func (o pushOverlay) String() string { return "push_overlay(" + o.configuration.String() + ")" }

// PopOverlay drops the last overlay of the current element.
func PopOverlay() Operation { return popOverlay{} }

type popOverlay struct{}

func (popOverlay) IsApplicable(stack BackStack) bool {
	last, ok := stack.Last()
	return ok && len(last.Overlays) > 0
}

func (o popOverlay) Apply(stack BackStack) BackStack {
	if !o.IsApplicable(stack) {
		return stack
	}
	next := stack.Clone()
	last := &next[len(next)-1]
	last.Overlays = last.Overlays[:len(last.Overlays)-1]
	return next
}

func (popOverlay) String() string { return "pop_overlay" }

// SingleTop brings back the newest element with the same configuration name.
// An exact match is kept with its overlays and everything above it dropped; a match with other params
// is replaced by a new element. Without a match it behaves like Push.
func SingleTop(c domain.Configuration) Operation { return singleTop{c} }

type singleTop struct{ configuration domain.Configuration }

func (o singleTop) IsApplicable(stack BackStack) bool {
	return push(o).IsApplicable(stack)
}

func (o singleTop) Apply(stack BackStack) BackStack {
	target := -1
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Routing.Configuration.Name == o.configuration.Name {
			target = i
			break
		}
	}
	if target == -1 {
		return push(o).Apply(stack)
	}

	next := stack.Clone()
	if next[target].Routing.Configuration.Equal(o.configuration) {
		return next[:target+1]
	}
	return append(next[:target], domain.NewHistoryElement(o.configuration))
}

func (o singleTop) String() string { return "single_top(" + o.configuration.String() + ")" }

// Parse builds an operation from its wire name, as used by scenario files and the HTTP
// adapter. Operations that take a configuration require a non-empty name.
func Parse(name string, c domain.Configuration) (Operation, error) {
	if c.Name == "" {
		switch name {
		case "pop":
			return Pop(), nil
		case "pop_overlay":
			return PopOverlay(), nil
		}
		return nil, fmt.Errorf("%w: %q needs a configuration name", domain.ErrInvalidOperation, name)
	}
	switch name {
	case "push":
		return Push(c), nil
	case "replace":
		return Replace(c), nil
	case "new_root":
		return NewRoot(c), nil
	case "push_overlay":
		return PushOverlay(c), nil
	case "single_top":
		return SingleTop(c), nil
	case "pop", "pop_overlay":
		return nil, fmt.Errorf("%w: %q takes no configuration", domain.ErrInvalidOperation, name)
	}
	return nil, fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidOperation, name)
}
