package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ribs/pkg/scenario"
)

// GenerateMermaid renders the screens a scenario run went through as a Mermaid
// flowchart. Each node is the top back stack element, named like "Details+Share";
// each edge is the step that changed it. Shapes:
// - Start: ((Circle))
// - With overlays: [/Parallelogram/]
// - Default: [Rectangle]
// Screens still in the final back stack are styled as visited, its top as current.
func GenerateMermaid(report *scenario.Report) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	start := top(report.Start)
	declared := make(map[string]bool)
	declare := func(name string) {
		if name == "" || declared[name] {
			return
		}
		declared[name] = true

		opener, closer := "[", "]"
		switch {
		case name == start:
			opener, closer = "((", "))"
		case strings.Contains(name, "+"):
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(name), opener, name, closer)
	}

	declare(start)
	edges := make(map[string]bool)
	prev := start
	for _, step := range report.Steps {
		cur := top(step.BackStack)
		if cur == "" || cur == prev {
			continue
		}
		declare(cur)
		if prev != "" {
			edge := fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(prev), step.Op, sanitizeMermaidID(cur))
			if !edges[edge] {
				edges[edge] = true
				sb.WriteString(edge)
			}
		}
		prev = cur
	}

	final := report.Start
	if n := len(report.Steps); n > 0 {
		final = report.Steps[n-1].BackStack
	}
	if len(final) == 0 {
		return sb.String()
	}

	sb.WriteString("\n    %% Back stack styles\n")
	// Force black text (color:#000) for contrast on light and dark themes.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	for _, name := range final[:len(final)-1] {
		if declared[name] {
			fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeMermaidID(name))
		}
	}
	fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(top(final)))
	return sb.String()
}

func top(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", "+", "__", " ", "_").Replace(id)
}
