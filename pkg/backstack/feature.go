package backstack

import (
	"log/slog"

	"github.com/aretw0/ribs/internal/logging"
	"github.com/aretw0/ribs/pkg/domain"
)

// Subscriber is notified after every change with the previous and the new stack.
type Subscriber func(old, new BackStack)

// Feature holds the current back stack and publishes its changes.
// It is not safe for concurrent use; it lives on the routing thread.
type Feature struct {
	stack       BackStack
	subscribers []Subscriber
	logger      *slog.Logger
}

// Option configures a Feature.
type Option func(*Feature)

// WithLogger sets the logger used for applied operations.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Feature) {
		f.logger = logger
	}
}

// NewFeature creates a stack holding a single initial element.
func NewFeature(initial domain.Configuration, opts ...Option) *Feature {
	return newFeature(BackStack{domain.NewHistoryElement(initial)}, opts)
}

// RestoreFeature creates a feature from a saved stack.
func RestoreFeature(saved []domain.RoutingHistoryElement, opts ...Option) *Feature {
	return newFeature(BackStack(saved).Clone(), opts)
}

func newFeature(stack BackStack, opts []Option) *Feature {
	f := &Feature{
		stack:  stack,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a copy of the current stack.
func (f *Feature) State() BackStack {
	return f.stack.Clone()
}

// Subscribe registers a subscriber for future changes.
func (f *Feature) Subscribe(s Subscriber) {
	f.subscribers = append(f.subscribers, s)
}

// Accept applies op when applicable and reports whether the stack changed.
func (f *Feature) Accept(op Operation) bool {
	if !op.IsApplicable(f.stack) {
		f.logger.Debug("backstack operation not applicable", "op", op.String(), "size", len(f.stack))
		return false
	}

	old := f.stack
	f.stack = op.Apply(old)
	f.logger.Debug("backstack operation applied", "op", op.String(), "size", len(f.stack))

	for _, s := range f.subscribers {
		s(old.Clone(), f.stack.Clone())
	}
	return true
}
