package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/ribs/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) *scenario.Scenario {
	t.Helper()
	s, err := scenario.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestValidateScenario(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		res := ValidateScenario(parse(t, `
initial: {name: Home}
permanent: [{name: Nav}]
routes:
  Home: {views: [content], headless: [analytics]}
  Details: {views: [body]}
steps:
  - op: push
    configuration: {name: Details}
  - op: expect
    back_stack: [Home, Details]
`))
		assert.NoError(t, res.Err())
		assert.Empty(t, res.Warnings)
	})

	t.Run("Broken Routes", func(t *testing.T) {
		res := ValidateScenario(parse(t, `
initial: {name: Home}
permanent: [{name: Home}]
routes:
  Empty: {}
  Twice: {views: [a], headless: [a]}
`))
		require.Error(t, res.Err())
		assert.Len(t, res.Errors, 3)
		assert.Contains(t, res.Err().Error(), "route 'Empty' builds no nodes")
		assert.Contains(t, res.Err().Error(), "route 'Twice' declares node 'a' twice")
		assert.Contains(t, res.Err().Error(), "permanent configuration 1 ('Home') is already attached")
	})

	t.Run("Frame Longer Than Duration", func(t *testing.T) {
		s := parse(t, `initial: {name: Home}`)
		s.Transition = scenario.Transition{Duration: 10 * time.Millisecond, Frame: 20 * time.Millisecond}
		assert.ErrorContains(t, ValidateScenario(s).Err(), "longer than its duration")
	})

	t.Run("Warnings", func(t *testing.T) {
		res := ValidateScenario(parse(t, `
initial: {name: Home}
routes:
  Orphan: {views: [x]}
steps:
  - op: expect
`))
		assert.NoError(t, res.Err())
		assert.Equal(t, []string{"step 1: expect checks nothing", "route 'Orphan' is never reached"}, res.Warnings)
	})
}
