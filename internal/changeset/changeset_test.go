package changeset

import (
	"testing"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func kinds(tx domain.Transaction) []string {
	var out []string
	for _, c := range tx.Commands {
		out = append(out, c.Kind.String()+":"+c.Routing.Configuration.Name)
	}
	return out
}

func TestDiff_Push(t *testing.T) {
	a := domain.NewHistoryElement(domain.Config("A"))
	b := domain.NewHistoryElement(domain.Config("B"))

	tx := Diff([]domain.RoutingHistoryElement{a}, []domain.RoutingHistoryElement{a, b})

	assert.Equal(t, []string{"deactivate:A", "add:B", "activate:B"}, kinds(tx))
	assert.True(t, tx.Descriptor.Equal(domain.Describe(
		[]domain.Configuration{domain.Config("A")},
		[]domain.Configuration{domain.Config("B")},
	)))
}

func TestDiff_PopIsReverseOfPush(t *testing.T) {
	a := domain.NewHistoryElement(domain.Config("A"))
	b := domain.NewHistoryElement(domain.Config("B"))
	before := []domain.RoutingHistoryElement{a}
	after := []domain.RoutingHistoryElement{a, b}

	push := Diff(before, after)
	pop := Diff(after, before)

	assert.Equal(t, []string{"deactivate:B", "remove:B", "activate:A"}, kinds(pop))
	assert.True(t, pop.Descriptor.IsReverseOf(push.Descriptor))
}

func TestDiff_Overlay(t *testing.T) {
	a := domain.NewHistoryElement(domain.Config("A"))
	withOverlay := a.Clone()
	withOverlay.Overlays = append(withOverlay.Overlays, domain.NewRouting(domain.Config("Dialog")))

	tx := Diff([]domain.RoutingHistoryElement{a}, []domain.RoutingHistoryElement{withOverlay})
	assert.Equal(t, []string{"add:Dialog", "activate:Dialog"}, kinds(tx), "content under an overlay stays active")

	back := Diff([]domain.RoutingHistoryElement{withOverlay}, []domain.RoutingHistoryElement{a})
	assert.Equal(t, []string{"deactivate:Dialog", "remove:Dialog"}, kinds(back))
}

func TestDiff_Initial(t *testing.T) {
	a := domain.NewHistoryElement(domain.Config("A"))
	b := domain.NewHistoryElement(domain.Config("B"))

	tx := Initial([]domain.RoutingHistoryElement{a, b})
	assert.Equal(t, []string{"add:A", "add:B", "activate:B"}, kinds(tx))
	assert.Empty(t, tx.Descriptor.From)
}

func TestDiff_NoChange(t *testing.T) {
	a := domain.NewHistoryElement(domain.Config("A"))
	tx := Diff([]domain.RoutingHistoryElement{a}, []domain.RoutingHistoryElement{a})
	assert.Empty(t, tx.Commands)
}
