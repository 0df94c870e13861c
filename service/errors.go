package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an update or delete matched no action item.
	ErrNotFound = errors.New("action item not found")

	// ErrServiceUnavailable is returned when a required component was disabled at startup.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ConfigurationError names the settings a component was missing at startup.
type ConfigurationError struct {
	Component string
	Missing   []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured: missing %s", e.Component, strings.Join(e.Missing, ", "))
}

// GenerationFailure is an LLM call or response-parsing failure.
// Raw holds the provider's reply when one was received.
type GenerationFailure struct {
	Raw string
	Err error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("failed to generate action items: %v", e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

// PersistenceFailure is a transport or protocol failure talking to the action item store.
type PersistenceFailure struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *PersistenceFailure) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("action item store %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("action item store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }
