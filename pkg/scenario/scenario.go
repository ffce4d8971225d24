package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Op names a scenario step.
type Op string

const (
	OpPush        Op = "push"
	OpPop         Op = "pop"
	OpReplace     Op = "replace"
	OpNewRoot     Op = "new_root"
	OpPushOverlay Op = "push_overlay"
	OpPopOverlay  Op = "pop_overlay"
	OpSingleTop   Op = "single_top"
	OpSleep       Op = "sleep"
	OpWakeUp      Op = "wake_up"
	OpFrames      Op = "frames"
	OpSettle      Op = "settle"
	OpExpect      Op = "expect"
)

var configurationOps = []Op{OpPush, OpReplace, OpNewRoot, OpPushOverlay, OpSingleTop}

var knownOps = append([]Op{OpPop, OpPopOverlay, OpSleep, OpWakeUp, OpFrames, OpSettle, OpExpect}, configurationOps...)

// Scenario is a parsed navigation script.
type Scenario struct {
	Name       string                 `yaml:"name"`
	Initial    domain.Configuration   `yaml:"initial"`
	Permanent  []domain.Configuration `yaml:"permanent"`
	Routes     map[string]Route       `yaml:"routes"`
	Transition Transition             `yaml:"transition"`
	Steps      []Step                 `yaml:"-"`
}

// Route lists the nodes built for a configuration name. Undeclared names build a
// single view node.
type Route struct {
	Views    []string `yaml:"views"`
	Headless []string `yaml:"headless"`
}

// Transition enables crossfades. A zero Duration makes every change immediate.
type Transition struct {
	Duration time.Duration `yaml:"duration"`
	Frame    time.Duration `yaml:"frame"`
}

// Step is one decoded instruction.
type Step struct {
	Op            Op
	Configuration domain.Configuration `mapstructure:"configuration"`
	Count         int                  `mapstructure:"count"`
	Expect        Expectation          `mapstructure:",squash"`
}

// Expectation checks the router after the previous steps. Nil fields are not checked.
type Expectation struct {
	BackStack []string `mapstructure:"back_stack"`
	Views     []string `mapstructure:"views"`
	Ongoing   *int     `mapstructure:"ongoing"`
}

type document struct {
	Scenario `yaml:",inline"`
	Steps    []map[string]any `yaml:"steps"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a scenario document.
func Parse(r io.Reader) (*Scenario, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	sc := doc.Scenario
	if sc.Initial.Name == "" {
		return nil, errors.New("scenario has no initial configuration")
	}
	if sc.Transition.Duration > 0 && sc.Transition.Frame <= 0 {
		sc.Transition.Frame = 16 * time.Millisecond
	}

	var errs []error
	for i, raw := range doc.Steps {
		step, err := DecodeStep(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
			continue
		}
		sc.Steps = append(sc.Steps, step)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &sc, nil
}

// DecodeStep decodes one step from its generic form: an "op" key plus the op's
// arguments.
func DecodeStep(raw map[string]any) (Step, error) {
	op, _ := raw["op"].(string)
	if !slices.Contains(knownOps, Op(op)) {
		return Step{}, fmt.Errorf("unknown op %q", op)
	}

	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "op" {
			args[k] = v
		}
	}

	step := Step{Op: Op(op)}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &step,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Step{}, err
	}
	if err := dec.Decode(args); err != nil {
		return Step{}, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case slices.Contains(configurationOps, step.Op) && step.Configuration.Name == "":
		return Step{}, fmt.Errorf("%s: missing configuration name", op)
	case step.Op == OpFrames && step.Count <= 0:
		step.Count = 1
	}
	return step, nil
}
