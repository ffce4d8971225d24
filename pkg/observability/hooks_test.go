package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/observability"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnEffect: func(*domain.EffectEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnEffect:      func(*domain.EffectEvent) { calls = append(calls, "b") },
		OnTransaction: func(*domain.TransactionEvent) { calls = append(calls, "tx") },
	}

	hooks := observability.Chain(a, domain.LifecycleHooks{}, b)
	hooks.OnEffect(&domain.EffectEvent{})
	hooks.OnTransaction(&domain.TransactionEvent{})

	assert.Equal(t, []string{"a", "b", "tx"}, calls)
	assert.Nil(t, hooks.OnTransitionStarted)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LoggingHooks(logging.NewWithWriter(&buf, slog.LevelInfo))

	hooks.OnTransaction(&domain.TransactionEvent{
		Transaction: domain.Change(domain.NoTransition, domain.Add(domain.Routing{Key: "k", Configuration: domain.Config("Home")})),
		Commands:    1,
	})
	hooks.OnEffect(&domain.EffectEvent{Effect: domain.TransitionEffect(domain.EffectGlobal, nil)})
	hooks.OnTransitionInterrupted(&domain.TransitionEvent{Descriptor: domain.NoTransition, Outcome: "continued"})

	out := buf.String()
	assert.Contains(t, out, "msg=transaction")
	assert.Contains(t, out, "commands=1")
	assert.NotContains(t, out, "msg=effect", "effects log at debug")
	assert.Contains(t, out, "outcome=continued")
}
