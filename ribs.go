package ribs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aretw0/ribs/internal/changeset"
	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/internal/runtime"
	"github.com/aretw0/ribs/pkg/backstack"
	"github.com/aretw0/ribs/pkg/capsule"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

var (
	// ErrNotStarted is returned by navigation calls made before Start.
	ErrNotStarted = errors.New("ribs: router not started")

	// ErrNoInitialConfiguration is returned by Start when there is neither a saved back
	// stack nor an initial configuration.
	ErrNoInitialConfiguration = errors.New("ribs: no initial configuration")
)

// Router drives a routing pool from a back stack.
//
// Every back stack change is diffed into one transaction for the pool. Permanent
// configurations live outside the back stack and stay active for the router's lifetime.
// A Router is not safe for concurrent use: call it from the host's routing thread.
type Router struct {
	parent   ports.ParentNode
	resolver ports.RoutingResolver

	logger    *slog.Logger
	handler   ports.TransitionHandler
	scheduler ports.Scheduler
	hooks     domain.LifecycleHooks
	permanent []domain.Configuration
	initial   *domain.Configuration
	saved     *domain.SavedState

	feature *backstack.Feature
	pool    *runtime.Pool
}

// Option defines a functional option for configuring the Router.
type Option func(*Router)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTransitionHandler animates navigation. Without one every change is immediate.
func WithTransitionHandler(h ports.TransitionHandler) Option {
	return func(r *Router) {
		r.handler = h
	}
}

// WithScheduler defers transition handlers to the host's next frame.
func WithScheduler(s ports.Scheduler) Option {
	return func(r *Router) {
		r.scheduler = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Router) {
		r.hooks = hooks
	}
}

// WithPermanent adds configurations that are attached and active for as long as the
// router lives, independent of the back stack.
func WithPermanent(configs ...domain.Configuration) Option {
	return func(r *Router) {
		r.permanent = append(r.permanent, configs...)
	}
}

// WithInitialConfiguration sets the root of a fresh back stack.
func WithInitialConfiguration(c domain.Configuration) Option {
	return func(r *Router) {
		r.initial = &c
	}
}

// WithSavedState restores the router from a snapshot. A snapshot without a back stack
// starts fresh from the initial configuration.
func WithSavedState(saved *domain.SavedState) Option {
	return func(r *Router) {
		r.saved = saved
	}
}

// New creates a Router attaching children under parent. Nothing happens until Start.
func New(resolver ports.RoutingResolver, parent ports.ParentNode, opts ...Option) *Router {
	r := &Router{
		parent:   parent,
		resolver: resolver,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start builds the pool and attaches the initial or restored configuration.
func (r *Router) Start() error {
	if r.pool != nil {
		return nil
	}

	restoring := r.saved != nil && len(r.saved.BackStack) > 0
	if !restoring && r.initial == nil {
		return ErrNoInitialConfiguration
	}

	poolOpts := []runtime.Option{
		runtime.WithLogger(r.logger),
		runtime.WithTransitionHandler(r.handler),
		runtime.WithScheduler(r.scheduler),
		runtime.WithLifecycleHooks(r.hooks),
	}
	featureOpts := []backstack.Option{backstack.WithLogger(r.logger)}

	var tx domain.Transaction
	if restoring {
		poolOpts = append(poolOpts, runtime.WithSavedState(r.saved))
		r.pool = runtime.NewPool(r.parent, r.resolver, poolOpts...)
		r.feature = backstack.RestoreFeature(r.saved.BackStack, featureOpts...)
		tx = r.reactivate()
	} else {
		r.pool = runtime.NewPool(r.parent, r.resolver, poolOpts...)
		r.feature = backstack.NewFeature(*r.initial, featureOpts...)
		tx = changeset.Initial(r.feature.State())
		tx.Descriptor = domain.NoTransition
	}
	tx.Commands = append(r.permanentCommands(), tx.Commands...)

	r.feature.Subscribe(func(from, to backstack.BackStack) {
		if err := r.pool.Accept(changeset.Diff(from, to)); err != nil {
			r.logger.Warn("back stack change dropped", "err", err)
		}
	})

	r.logger.Debug("router started", "restored", restoring, "backstack", len(r.feature.State()))
	if len(tx.Commands) == 0 {
		return nil
	}
	return r.pool.Accept(tx)
}

// reactivate brings the active elements of a restored Active pool back on screen.
// Sleeping pools were already rebuilt and wait for WakeUp.
func (r *Router) reactivate() domain.Transaction {
	state := r.pool.State()
	if state.ActivationLevel != domain.Active {
		return domain.Change(domain.NoTransition)
	}
	var commands []domain.Command
	for _, k := range state.Active() {
		commands = append(commands, domain.Activate(state.Pool[k].Routing))
	}
	return domain.Change(domain.NoTransition, commands...)
}

// permanentCommands attaches the permanent configurations missing from the pool.
// Restored ones come back with the rest of the pool.
func (r *Router) permanentCommands() []domain.Command {
	state := r.pool.State()
	var commands []domain.Command
	for i, c := range r.permanent {
		routing := domain.Routing{Key: permanentKey(i), Configuration: c}
		if _, ok := state.Pool[routing.Key]; ok {
			continue
		}
		commands = append(commands, domain.Add(routing), domain.Activate(routing))
	}
	return commands
}

// Permanent keys are stable so a restored pool recognises its permanent elements.
func permanentKey(i int) domain.RoutingKey {
	return domain.RoutingKey("permanent-" + strconv.Itoa(i))
}

func (r *Router) ready() error {
	if r.pool == nil {
		return ErrNotStarted
	}
	if r.pool.Disposed() {
		return domain.ErrPoolDisposed
	}
	return nil
}

// Accept applies a back stack operation. It reports false when the operation does not
// apply, such as Pop on a lone root.
func (r *Router) Accept(op backstack.Operation) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	return r.feature.Accept(op), nil
}

// Push adds a new element on top of the back stack.
func (r *Router) Push(c domain.Configuration) (bool, error) {
	return r.Accept(backstack.Push(c))
}

// Pop removes the top overlay, or the top element when it has none.
func (r *Router) Pop() (bool, error) {
	return r.Accept(backstack.Pop())
}

// Replace swaps the top element.
func (r *Router) Replace(c domain.Configuration) (bool, error) {
	return r.Accept(backstack.Replace(c))
}

// NewRoot clears the back stack down to a single new element.
func (r *Router) NewRoot(c domain.Configuration) (bool, error) {
	return r.Accept(backstack.NewRoot(c))
}

// PushOverlay stacks an overlay on the top element.
func (r *Router) PushOverlay(c domain.Configuration) (bool, error) {
	return r.Accept(backstack.PushOverlay(c))
}

// PopOverlay removes the top overlay.
func (r *Router) PopOverlay() (bool, error) {
	return r.Accept(backstack.PopOverlay())
}

// SingleTop brings the newest element with the same configuration name back to the
// top, dropping what was above it, or pushes c when there is none.
func (r *Router) SingleTop(c domain.Configuration) (bool, error) {
	return r.Accept(backstack.SingleTop(c))
}

// Sleep moves every active element to Sleeping, landing running transitions first.
func (r *Router) Sleep() error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.pool.Accept(domain.Global(domain.GlobalSleep))
}

// WakeUp makes sleeping elements active again and reattaches their views.
func (r *Router) WakeUp() error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.pool.Accept(domain.Global(domain.GlobalWakeUp))
}

// State returns a copy of the pool state.
func (r *Router) State() domain.WorkingState {
	if r.pool == nil {
		return domain.NewWorkingState()
	}
	return r.pool.State()
}

// BackStack returns a copy of the current back stack.
func (r *Router) BackStack() backstack.BackStack {
	if r.feature == nil {
		return nil
	}
	return r.feature.State()
}

// SaveInstanceState snapshots the pool and the back stack.
func (r *Router) SaveInstanceState() (*domain.SavedState, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if err := r.pool.Accept(domain.Global(domain.GlobalSaveInstanceState)); err != nil {
		return nil, err
	}
	saved := r.pool.SavedState()
	saved.BackStack = r.feature.State()
	return &saved, nil
}

// Persist saves a snapshot under the capsule key.
func (r *Router) Persist(ctx context.Context, m *capsule.Manager, key string) error {
	saved, err := r.SaveInstanceState()
	if err != nil {
		return err
	}
	if err := m.Save(ctx, key, saved); err != nil {
		return fmt.Errorf("failed to persist capsule %q: %w", key, err)
	}
	return nil
}

// Dispose stops every running transition. The router cannot be used afterwards.
func (r *Router) Dispose() {
	if r.pool != nil {
		r.pool.Dispose()
	}
}

// Restore loads the snapshot stored under key, or an empty one when the capsule does
// not exist. Pass the result to WithSavedState.
func Restore(ctx context.Context, m *capsule.Manager, key string) (*domain.SavedState, error) {
	saved, _, err := m.LoadOrEmpty(ctx, key)
	return saved, err
}
