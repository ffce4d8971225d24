package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/ribs"
	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/capsule"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/dsl"
	"github.com/aretw0/ribs/pkg/loop"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/registry"
	"github.com/aretw0/ribs/pkg/transition"
)

// ErrExpectation is returned when an expect step does not match.
var ErrExpectation = errors.New("expectation failed")

// settleLimit bounds the frames a settle step may take.
const settleLimit = 10_000

// StepResult is the router as observed after one step.
type StepResult struct {
	Index     int      `json:"index"`
	Op        Op       `json:"op"`
	Applied   bool     `json:"applied"`
	BackStack []string `json:"back_stack"`
	Views     []string `json:"views"`
	Ongoing   int      `json:"ongoing"`
}

// Report is the outcome of a run.
type Report struct {
	Name  string       `json:"name"`
	Start []string     `json:"start"`
	Steps []StepResult `json:"steps"`
	Tree  string       `json:"tree"`
}

// Runner plays scenarios.
type Runner struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	manager *capsule.Manager
	capsule string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to the router.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLifecycleHooks observes the router of every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithCapsule restores the router from key before the first step and persists it
// after the last one.
func WithCapsule(m *capsule.Manager, key string) Option {
	return func(r *Runner) {
		r.manager = m
		r.capsule = key
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Player drives one router step by step. It is not safe for concurrent use.
type Player struct {
	scenario *Scenario
	runner   *Runner
	router   *ribs.Router
	root     *node.Node
	host     *loop.Loop
	driver   *transition.Driver
	played   int
}

// Start builds the router of s, restoring it from the capsule when one is configured.
// Steps of s are not played.
func (r *Runner) Start(ctx context.Context, s *Scenario) (*Player, error) {
	resolver, err := s.Registry()
	if err != nil {
		return nil, err
	}

	p := &Player{
		scenario: s,
		runner:   r,
		root:     node.New("root"),
		host:     loop.New(loop.WithLogger(r.logger)),
		driver:   transition.NewDriver(),
	}

	opts := []ribs.Option{
		ribs.WithLogger(r.logger),
		ribs.WithLifecycleHooks(r.hooks),
		ribs.WithInitialConfiguration(s.Initial),
		ribs.WithPermanent(s.Permanent...),
	}
	if s.Transition.Duration > 0 {
		opts = append(opts,
			ribs.WithScheduler(p.host),
			ribs.WithTransitionHandler(transition.NewCrossfade(s.Transition.Duration, p.driver)),
		)
	}
	if r.manager != nil {
		saved, err := ribs.Restore(ctx, r.manager, r.capsule)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ribs.WithSavedState(saved))
	}

	p.router = ribs.New(resolver, p.root, opts...)
	if err := p.router.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

// Play applies one step and observes the router. An expect step that does not match
// returns the observation along with an error wrapping ErrExpectation.
func (p *Player) Play(step Step) (StepResult, error) {
	p.played++
	applied, err := play(p.router, p.host, p.driver, p.scenario.Transition, step)
	if err != nil {
		return StepResult{}, fmt.Errorf("step %d (%s): %w", p.played, step.Op, err)
	}

	result := observe(p.router, p.root)
	result.Index = p.played
	result.Op = step.Op
	result.Applied = applied
	p.runner.logger.Debug("scenario step", "index", p.played, "op", step.Op, "applied", applied, "back_stack", result.BackStack)

	if step.Op == OpExpect {
		if err := check(step.Expect, result); err != nil {
			return result, fmt.Errorf("step %d: %w", p.played, err)
		}
	}
	return result, nil
}

// Router returns the driven router.
func (p *Player) Router() *ribs.Router {
	return p.router
}

// Close lands running transitions, persists the capsule if any and disposes the
// router. It returns the final node tree.
func (p *Player) Close(ctx context.Context) (string, error) {
	defer p.router.Dispose()

	settle(p.host, p.driver, p.scenario.Transition)
	tree := p.root.Dump()

	if p.runner.manager != nil {
		if err := p.router.Persist(ctx, p.runner.manager, p.runner.capsule); err != nil {
			return tree, err
		}
	}
	return tree, nil
}

// Run plays every step. On failure the report holds the steps played so far.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	p, err := r.Start(ctx, s)
	if err != nil {
		return nil, err
	}

	report := &Report{Name: s.Name, Start: p.router.BackStack().Names()}
	for _, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			p.router.Dispose()
			return report, err
		}

		result, err := p.Play(step)
		if err != nil {
			if result.Index > 0 {
				report.Steps = append(report.Steps, result)
			}
			p.router.Dispose()
			return report, err
		}
		report.Steps = append(report.Steps, result)
	}

	report.Tree, err = p.Close(ctx)
	return report, err
}

func play(router *ribs.Router, host *loop.Loop, driver *transition.Driver, t Transition, step Step) (bool, error) {
	switch step.Op {
	case OpPush:
		return router.Push(step.Configuration)
	case OpPop:
		return router.Pop()
	case OpReplace:
		return router.Replace(step.Configuration)
	case OpNewRoot:
		return router.NewRoot(step.Configuration)
	case OpPushOverlay:
		return router.PushOverlay(step.Configuration)
	case OpPopOverlay:
		return router.PopOverlay()
	case OpSingleTop:
		return router.SingleTop(step.Configuration)
	case OpSleep:
		return true, router.Sleep()
	case OpWakeUp:
		return true, router.WakeUp()
	case OpFrames:
		for range step.Count {
			host.Frame()
			driver.Step(t.Frame)
		}
		return true, nil
	case OpSettle:
		settle(host, driver, t)
		return true, nil
	case OpExpect:
		return true, nil
	}
	return false, fmt.Errorf("unsupported op %q", step.Op)
}

// settle runs frames until no task is queued and no tween runs.
func settle(host *loop.Loop, driver *transition.Driver, t Transition) {
	for range settleLimit {
		ran := host.Frame()
		if ran == 0 && driver.Active() == 0 {
			return
		}
		driver.Step(t.Frame)
	}
}

func observe(router *ribs.Router, root *node.Node) StepResult {
	return StepResult{
		BackStack: router.BackStack().Names(),
		Views:     viewNames(root),
		Ongoing:   len(router.State().OngoingTransitions),
	}
}

// viewNames lists attached views by node name, without the routing key suffix.
func viewNames(root *node.Node) []string {
	children := root.ViewChildren()
	out := make([]string, 0, len(children))
	for _, c := range children {
		name, _, _ := strings.Cut(c.ID(), "#")
		out = append(out, name)
	}
	return out
}

func check(e Expectation, got StepResult) error {
	var errs []error
	if e.BackStack != nil && !slices.Equal(e.BackStack, got.BackStack) {
		errs = append(errs, fmt.Errorf("back stack: want %v, got %v", e.BackStack, got.BackStack))
	}
	if e.Views != nil && !slices.Equal(e.Views, got.Views) {
		errs = append(errs, fmt.Errorf("views: want %v, got %v", e.Views, got.Views))
	}
	if e.Ongoing != nil && *e.Ongoing != got.Ongoing {
		errs = append(errs, fmt.Errorf("ongoing transitions: want %d, got %d", *e.Ongoing, got.Ongoing))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrExpectation, errors.Join(errs...))
}

// Registry builds the resolver for the declared routes. Undeclared configurations
// get a single view.
func (s *Scenario) Registry() (*registry.Registry, error) {
	declared := s.Routes
	b := dsl.New().Default()
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		rb := b.Route(name)
		for _, v := range declared[name].Views {
			rb.View(v)
		}
		for _, h := range declared[name].Headless {
			rb.Headless(h)
		}
	}
	return b.Build()
}
