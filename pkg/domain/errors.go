package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRoutingKey is raised when a command references a key that is neither in the
// pool nor being added by the same transaction. It always indicates a caller bug.
var ErrUnknownRoutingKey = errors.New("unknown routing key")

// ErrCapsuleNotFound is returned when no saved state exists under a capsule key.
var ErrCapsuleNotFound = errors.New("capsule not found")

// ErrPoolDisposed is returned when a transaction reaches a disposed pool.
var ErrPoolDisposed = errors.New("routing pool disposed")

// ErrInvalidOperation is returned for back stack operations that cannot be built
// from the given arguments.
var ErrInvalidOperation = errors.New("invalid back stack operation")

// PreconditionError reports a violated contract of the routing state machine.
// It is raised with panic: it is never recoverable at the call site.
type PreconditionError struct {
	Op  string
	Key RoutingKey
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("ribs: %s: key %s: %v", e.Op, e.Key, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
