package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/ribs/pkg/scenario"
)

// Result lists what ValidateScenario found. Errors make a scenario unusable;
// warnings point at routes that are probably mistakes.
type Result struct {
	Errors   []string
	Warnings []string
}

// Err returns nil when there are no errors.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// ValidateScenario checks route declarations and reports declared routes that no
// configuration of the scenario ever reaches.
func ValidateScenario(s *scenario.Scenario) Result {
	var res Result

	routes := make([]string, 0, len(s.Routes))
	for name := range s.Routes {
		routes = append(routes, name)
	}
	slices.Sort(routes)

	for _, name := range routes {
		route := s.Routes[name]
		nodes := append(slices.Clone(route.Views), route.Headless...)
		if len(nodes) == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("route '%s' builds no nodes", name))
			continue
		}
		seen := make(map[string]bool, len(nodes))
		for _, n := range nodes {
			if seen[n] {
				res.Errors = append(res.Errors, fmt.Sprintf("route '%s' declares node '%s' twice", name, n))
			}
			seen[n] = true
		}
	}

	reached := map[string]bool{s.Initial.Name: true}
	for i, p := range s.Permanent {
		if reached[p.Name] {
			res.Errors = append(res.Errors, fmt.Sprintf("permanent configuration %d ('%s') is already attached", i+1, p.Name))
		}
		reached[p.Name] = true
	}

	if t := s.Transition; t.Duration > 0 && t.Frame > t.Duration {
		res.Errors = append(res.Errors, fmt.Sprintf("transition frame %s is longer than its duration %s", t.Frame, t.Duration))
	}

	for i, step := range s.Steps {
		if step.Configuration.Name != "" {
			reached[step.Configuration.Name] = true
		}
		e := step.Expect
		if step.Op == scenario.OpExpect && e.BackStack == nil && e.Views == nil && e.Ongoing == nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("step %d: expect checks nothing", i+1))
		}
	}

	if len(s.Steps) > 0 {
		for _, name := range routes {
			if !reached[name] {
				res.Warnings = append(res.Warnings, fmt.Sprintf("route '%s' is never reached", name))
			}
		}
	}
	return res
}
