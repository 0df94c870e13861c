package services

import (
	"errors"
	"fmt"
)

// Component is a dependency built once at startup that is either ready or disabled.
// Callers must go through Get, so the disabled case cannot be skipped.
type Component[T any] struct {
	value  T
	ready  bool
	reason error
}

// Ready wraps a configured dependency.
func Ready[T any](value T) Component[T] {
	return Component[T]{value: value, ready: true}
}

// Disabled records why a dependency could not be configured.
func Disabled[T any](reason error) Component[T] {
	if reason == nil {
		reason = errors.New("not configured")
	}
	return Component[T]{reason: reason}
}

// Get returns the dependency, or ErrServiceUnavailable wrapping the startup reason.
func (c Component[T]) Get() (T, error) {
	if !c.ready {
		var zero T
		if c.reason == nil {
			return zero, ErrServiceUnavailable
		}
		return zero, fmt.Errorf("%w: %w", ErrServiceUnavailable, c.reason)
	}
	return c.value, nil
}

func (c Component[T]) IsReady() bool { return c.ready }

// Reason is nil for a ready component.
func (c Component[T]) Reason() error { return c.reason }
