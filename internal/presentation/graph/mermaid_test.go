package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ribs/internal/presentation/graph"
	"github.com/aretw0/ribs/pkg/scenario"
	"github.com/stretchr/testify/assert"
)

func step(op scenario.Op, stack ...string) scenario.StepResult {
	return scenario.StepResult{Op: op, BackStack: stack}
}

func TestGenerateMermaid(t *testing.T) {
	report := &scenario.Report{
		Start: []string{"Home"},
		Steps: []scenario.StepResult{
			step(scenario.OpPush, "Home", "Details"),
			step(scenario.OpPushOverlay, "Home", "Details+Share"),
			step(scenario.OpExpect, "Home", "Details+Share"),
			step(scenario.OpPopOverlay, "Home", "Details"),
			step(scenario.OpPushOverlay, "Home", "Details+Share"),
			step(scenario.OpPush, "Home", "Details", "my-page.v2"),
		},
	}

	out := graph.GenerateMermaid(report)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`Home(("Home"))`,
		`Details["Details"]`,
		`Details__Share[/"Details+Share"/]`,
		`my_page_v2["my-page.v2"]`,
		`Home -- "push" --> Details`,
		`Details -- "push_overlay" --> Details__Share`,
		`Details__Share -- "pop_overlay" --> Details`,
		"class Home visited;",
		"class Details visited;",
		"class my_page_v2 current;",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, `Details -- "push_overlay" --> Details__Share`), "edges are deduplicated")
	assert.NotContains(t, out, "expect", "steps that keep the top are not edges")
}

func TestGenerateMermaid_NoSteps(t *testing.T) {
	out := graph.GenerateMermaid(&scenario.Report{Start: []string{"Home"}})
	assert.Contains(t, out, `Home(("Home"))`)
	assert.Contains(t, out, "class Home current;")
}
