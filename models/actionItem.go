package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the completion state of an action item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Priority is the urgency of an action item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionItem is one task extracted from a meeting transcript.
type ActionItem struct {
	// ID is a UUID assigned at creation and never changed afterwards.
	ID string `json:"id"`

	// Text is the human-readable task description. Never empty.
	Text string `json:"text"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// CreatedAt is set once when the item is created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation. Nil means the item was never persisted or touched.
	UpdatedAt *time.Time `json:"updatedAt"`
}

// NewActionItem builds a pending, medium-priority item with a fresh id.
func NewActionItem(text string) (ActionItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ActionItem{}, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return ActionItem{
		ID:        uuid.New().String(),
		Text:      text,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Validate checks the entity invariants.
func (a ActionItem) Validate() error {
	if a.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(a.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if _, err := ParseStatus(string(a.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(a.Priority)); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Reason: "must be set"}
	}
	return nil
}

// ParseStatus accepts only the enumerated status values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted:
		return Status(s), nil
	default:
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("must be one of pending, completed (got %q)", s)}
	}
}

// ParsePriority accepts only the enumerated priority values.
func ParsePriority(p string) (Priority, error) {
	switch Priority(p) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(p), nil
	default:
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("must be one of high, medium, low (got %q)", p)}
	}
}

// ValidationError reports a field that failed boundary validation.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
