package backstack

import (
	"slices"
	"strings"

	"github.com/aretw0/ribs/pkg/domain"
)

// BackStack is an ordered navigation history, oldest first.
type BackStack []domain.RoutingHistoryElement

// Clone returns a deep copy.
func (b BackStack) Clone() BackStack {
	if b == nil {
		return nil
	}
	out := make(BackStack, len(b))
	for i, e := range b {
		out[i] = e.Clone()
	}
	return out
}

// Last returns the current element.
func (b BackStack) Last() (domain.RoutingHistoryElement, bool) {
	if len(b) == 0 {
		return domain.RoutingHistoryElement{}, false
	}
	return b[len(b)-1], true
}

// Active lists the routings on screen: the last content element and its overlays.
func (b BackStack) Active() []domain.Routing {
	last, ok := b.Last()
	if !ok {
		return nil
	}
	return last.Routings()
}

// Routings lists every routing of the stack, content before its overlays.
func (b BackStack) Routings() []domain.Routing {
	var out []domain.Routing
	for _, e := range b {
		out = append(out, e.Routings()...)
	}
	return out
}

// Configurations lists the configurations of Active.
func (b BackStack) Configurations() []domain.Configuration {
	active := b.Active()
	out := make([]domain.Configuration, len(active))
	for i, r := range active {
		out[i] = r.Configuration
	}
	return out
}

// Names renders each element as its configuration name followed by its overlays,
// joined with "+".
func (b BackStack) Names() []string {
	out := make([]string, 0, len(b))
	for _, e := range b {
		names := make([]string, 0, 1+len(e.Overlays))
		for _, r := range e.Routings() {
			names = append(names, r.Configuration.Name)
		}
		out = append(out, strings.Join(names, "+"))
	}
	return out
}

// Equal compares stacks by routing keys, so two pushes of equal configurations differ.
func (b BackStack) Equal(other BackStack) bool {
	return slices.EqualFunc(b, other, func(x, y domain.RoutingHistoryElement) bool {
		return x.Routing.Key == y.Routing.Key &&
			slices.EqualFunc(x.Overlays, y.Overlays, func(p, q domain.Routing) bool { return p.Key == q.Key })
	})
}

// topConfiguration is the configuration of the topmost routing: the last overlay,
// or the content when there is none.
func (b BackStack) topConfiguration() (domain.Configuration, bool) {
	active := b.Active()
	if len(active) == 0 {
		return domain.Configuration{}, false
	}
	return active[len(active)-1].Configuration, true
}
