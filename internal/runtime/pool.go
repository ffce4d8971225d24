package runtime

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// Pool is the single-writer store of the routing state.
// It is not safe for concurrent use: all calls happen on the host's routing thread.
type Pool struct {
	state  domain.WorkingState
	actor  *Actor
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	queue    []domain.Transaction
	busy     bool
	disposed bool
}

// Option configures a Pool.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	handler   ports.TransitionHandler
	scheduler ports.Scheduler
	hooks     domain.LifecycleHooks
	saved     *domain.SavedState
}

// WithLogger sets the logger used for transactions and effects.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTransitionHandler enables animated transitions.
// Without a handler every transaction completes synchronously.
func WithTransitionHandler(h ports.TransitionHandler) Option {
	return func(c *config) {
		c.handler = h
	}
}

// WithScheduler sets the host loop used to defer the transition handler by one frame.
// Without a scheduler the handler runs immediately.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithSavedState restores the pool from a snapshot.
func WithSavedState(saved *domain.SavedState) Option {
	return func(c *config) {
		c.saved = saved
	}
}

// NewPool creates a pool attaching nodes under parent and building them with resolver.
// A restored pool replays its sleeping elements as Add commands so their nodes exist
// again; other elements resolve lazily when a command first touches them.
func NewPool(parent ports.ParentNode, resolver ports.RoutingResolver, opts ...Option) *Pool {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Pool{
		state:  domain.NewWorkingState(),
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}
	if cfg.saved != nil {
		p.state = cfg.saved.ToWorkingState()
	}

	p.actor = &Actor{
		env: &env{
			parent: parent,
			emit:   p.emit,
			state:  func() domain.WorkingState { return p.state },
		},
		resolver:  resolver,
		handler:   cfg.handler,
		scheduler: cfg.scheduler,
		logger:    cfg.logger,
		hooks:     cfg.hooks,
	}

	p.bootstrap()
	return p
}

func (p *Pool) bootstrap() {
	var commands []domain.Command
	for _, k := range slices.Sorted(maps.Keys(p.state.Pool)) {
		c := p.state.Pool[k]
		if c.ActivationState == domain.Sleeping {
			commands = append(commands, domain.Add(c.Routing))
		}
	}
	if len(commands) > 0 {
		_ = p.Accept(domain.Change(domain.NoTransition, commands...))
	}
}

// Accept processes tx. A transaction accepted while another one is being processed,
// such as from a hook, is queued and processed right after it.
func (p *Pool) Accept(tx domain.Transaction) error {
	if p.disposed {
		return domain.ErrPoolDisposed
	}

	p.queue = append(p.queue, tx)
	if p.busy {
		return nil
	}

	p.busy = true
	defer func() {
		// A panicking transaction drops whatever was queued behind it.
		p.busy = false
		p.queue = nil
	}()

	for len(p.queue) > 0 && !p.disposed {
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.process(next)
	}
	return nil
}

func (p *Pool) process(tx domain.Transaction) {
	p.logger.Debug("processing transaction", "tx", tx.String())
	if p.hooks.OnTransaction != nil {
		p.hooks.OnTransaction(&domain.TransactionEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransaction},
			Transaction: tx,
			Commands:    len(tx.Commands),
			Global:      globalName(tx),
		})
	}
	p.actor.Execute(tx)
}

func (p *Pool) emit(e domain.Effect) {
	if p.disposed {
		return
	}
	p.state = domain.Reduce(p.state, e)
	p.logger.Debug("effect", "effect", e.String(), "pool", len(p.state.Pool))

	if p.hooks.OnEffect != nil {
		p.hooks.OnEffect(&domain.EffectEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEffect},
			Effect:    e,
			Kind:      e.Kind.String(),
			PoolSize:  len(p.state.Pool),
		})
	}

	switch e.Kind {
	case domain.EffectTransitionStarted:
		if p.hooks.OnTransitionStarted != nil {
			p.hooks.OnTransitionStarted(transitionEvent(domain.EventTransitionStarted, e.Transition))
		}
	case domain.EffectTransitionFinished:
		if p.hooks.OnTransitionFinished != nil {
			p.hooks.OnTransitionFinished(transitionEvent(domain.EventTransitionFinished, e.Transition))
		}
	}
}

// State returns a copy of the working state.
func (p *Pool) State() domain.WorkingState {
	return p.state.Clone()
}

// SavedState snapshots the pool for persistence.
func (p *Pool) SavedState() domain.SavedState {
	return p.state.ToSavedState()
}

// Disposed reports whether Dispose was called.
func (p *Pool) Disposed() bool {
	return p.disposed
}

// Dispose disposes every ongoing transition and drops deferred work.
// Later calls to Accept return domain.ErrPoolDisposed.
func (p *Pool) Dispose() {
	if p.disposed {
		return
	}
	// Disposed first: the transitions' finish effects are not reduced any more.
	p.disposed = true
	for _, t := range p.state.OngoingTransitions {
		t.Dispose()
	}
	p.actor.dispose()
	p.queue = nil
}

func transitionEvent(typ domain.EventType, t domain.OngoingTransition) *domain.TransitionEvent {
	return &domain.TransitionEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: typ},
		Descriptor: t.Descriptor(),
		Phase:      t.Phase(),
	}
}

func globalName(tx domain.Transaction) string {
	if !tx.IsGlobal() {
		return ""
	}
	return tx.Global.String()
}
