package observability

import (
	"log/slog"

	"github.com/aretw0/ribs/pkg/domain"
)

// Chain merges hook sets. Each callback runs the non-nil callbacks of every set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnTransaction = join(out.OnTransaction, h.OnTransaction)
		out.OnEffect = join(out.OnEffect, h.OnEffect)
		out.OnTransitionStarted = join(out.OnTransitionStarted, h.OnTransitionStarted)
		out.OnTransitionFinished = join(out.OnTransitionFinished, h.OnTransitionFinished)
		out.OnTransitionInterrupted = join(out.OnTransitionInterrupted, h.OnTransitionInterrupted)
	}
	return out
}

func join[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}

// LoggingHooks logs transactions and transition boundaries at Info and effects at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransaction: func(e *domain.TransactionEvent) {
			logger.Info("transaction", "tx", e.Transaction.String(), "commands", e.Commands)
		},
		OnEffect: func(e *domain.EffectEvent) {
			logger.Debug("effect", "effect", e.Effect.String(), "pool", e.PoolSize)
		},
		OnTransitionStarted: func(e *domain.TransitionEvent) {
			logger.Info("transition_started", "descriptor", e.Descriptor.String())
		},
		OnTransitionFinished: func(e *domain.TransitionEvent) {
			logger.Info("transition_finished", "descriptor", e.Descriptor.String(), "phase", e.Phase.String())
		},
		OnTransitionInterrupted: func(e *domain.TransitionEvent) {
			logger.Info("transition_interrupted", "descriptor", e.Descriptor.String(), "outcome", e.Outcome)
		},
	}
}
