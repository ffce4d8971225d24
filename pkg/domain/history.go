package domain

import "slices"

// RoutingHistoryElement is one back stack entry: a content routing and the overlays
// stacked on top of it.
type RoutingHistoryElement struct {
	Routing  Routing   `json:"routing" yaml:"routing"`
	Overlays []Routing `json:"overlays,omitempty" yaml:"overlays,omitempty"`
}

// NewHistoryElement wraps a configuration in a fresh element without overlays.
func NewHistoryElement(c Configuration) RoutingHistoryElement {
	return RoutingHistoryElement{Routing: NewRouting(c)}
}

// Clone returns a copy that shares no slice storage with e.
func (e RoutingHistoryElement) Clone() RoutingHistoryElement {
	e.Overlays = slices.Clone(e.Overlays)
	return e
}

// Routings lists the content routing followed by its overlays.
func (e RoutingHistoryElement) Routings() []Routing {
	out := make([]Routing, 0, 1+len(e.Overlays))
	out = append(out, e.Routing)
	return append(out, e.Overlays...)
}
