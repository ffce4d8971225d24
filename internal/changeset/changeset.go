// Package changeset turns two routing histories into the transaction that moves a
// pool from one to the other.
package changeset

import "github.com/aretw0/ribs/pkg/domain"

// Diff computes the commands taking a pool from one history to another.
//
// Active routings are the last element and its overlays. Removed routings are
// deactivated (when active) and removed, added routings are added (and activated
// when active), kept routings only change activation. Deactivations come first so
// exiting elements are marked before entering ones are attached.
func Diff(from, to []domain.RoutingHistoryElement) domain.Transaction {
	oldActive := activeKeys(from)
	newActive := activeKeys(to)
	oldAll := indexed(from)
	newAll := indexed(to)

	var deactivate, remove, add, activate []domain.Command

	for _, r := range routings(from) {
		_, kept := newAll[r.Key]
		switch {
		case !kept:
			if oldActive[r.Key] {
				deactivate = append(deactivate, domain.Deactivate(r))
			}
			remove = append(remove, domain.Remove(r))
		case oldActive[r.Key] && !newActive[r.Key]:
			deactivate = append(deactivate, domain.Deactivate(r))
		}
	}

	for _, r := range routings(to) {
		_, existed := oldAll[r.Key]
		switch {
		case !existed:
			add = append(add, domain.Add(r))
			if newActive[r.Key] {
				activate = append(activate, domain.Activate(r))
			}
		case newActive[r.Key] && !oldActive[r.Key]:
			activate = append(activate, domain.Activate(r))
		}
	}

	commands := make([]domain.Command, 0, len(deactivate)+len(remove)+len(add)+len(activate))
	commands = append(commands, deactivate...)
	commands = append(commands, remove...)
	commands = append(commands, add...)
	commands = append(commands, activate...)

	return domain.Change(domain.Describe(configurations(from), configurations(to)), commands...)
}

// Initial is the transaction that builds a history from an empty pool.
func Initial(history []domain.RoutingHistoryElement) domain.Transaction {
	return Diff(nil, history)
}

func routings(history []domain.RoutingHistoryElement) []domain.Routing {
	var out []domain.Routing
	for _, e := range history {
		out = append(out, e.Routings()...)
	}
	return out
}

func indexed(history []domain.RoutingHistoryElement) map[domain.RoutingKey]domain.Routing {
	out := make(map[domain.RoutingKey]domain.Routing)
	for _, r := range routings(history) {
		out[r.Key] = r
	}
	return out
}

func activeKeys(history []domain.RoutingHistoryElement) map[domain.RoutingKey]bool {
	out := make(map[domain.RoutingKey]bool)
	if len(history) == 0 {
		return out
	}
	for _, r := range history[len(history)-1].Routings() {
		out[r.Key] = true
	}
	return out
}

func configurations(history []domain.RoutingHistoryElement) []domain.Configuration {
	if len(history) == 0 {
		return nil
	}
	active := history[len(history)-1].Routings()
	out := make([]domain.Configuration, len(active))
	for i, r := range active {
		out[i] = r.Configuration
	}
	return out
}
