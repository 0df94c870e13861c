package models

import (
	"fmt"
	"sort"
	"strings"
)

// ActionItemPatch is a validated partial update. Nil fields are left untouched.
type ActionItemPatch struct {
	Text     *string
	Status   *Status
	Priority *Priority
}

// IsEmpty reports whether the patch changes no user-editable field.
func (p ActionItemPatch) IsEmpty() bool {
	return p.Text == nil && p.Status == nil && p.Priority == nil
}

// Fields returns the patch as stored column names.
func (p ActionItemPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if p.Text != nil {
		fields["text"] = *p.Text
	}
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.Priority != nil {
		fields["priority"] = string(*p.Priority)
	}
	return fields
}

// Apply returns a copy of item with the patch applied.
func (p ActionItemPatch) Apply(item ActionItem) ActionItem {
	if p.Text != nil {
		item.Text = *p.Text
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Priority != nil {
		item.Priority = *p.Priority
	}
	return item
}

var immutableFields = map[string]bool{
	"id":         true,
	"createdAt":  true,
	"created_at": true,
}

// timestamps are always stamped by the store, so a client value is dropped rather than rejected.
var storeOwnedFields = map[string]bool{
	"updatedAt":  true,
	"updated_at": true,
}

// ParseActionItemPatch turns a free-form update payload into a patch.
// Unknown keys, immutable keys and values outside the enums are rejected.
func ParseActionItemPatch(raw map[string]interface{}) (ActionItemPatch, error) {
	var patch ActionItemPatch

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch {
		case storeOwnedFields[key]:
			continue
		case immutableFields[key]:
			return ActionItemPatch{}, &ValidationError{Field: key, Reason: "is immutable"}
		}

		s, ok := value.(string)
		if !ok && (key == "text" || key == "status" || key == "priority") {
			return ActionItemPatch{}, &ValidationError{Field: key, Reason: fmt.Sprintf("must be a string (got %T)", value)}
		}

		switch key {
		case "text":
			text := strings.TrimSpace(s)
			if text == "" {
				return ActionItemPatch{}, &ValidationError{Field: "text", Reason: "must not be empty"}
			}
			patch.Text = &text
		case "status":
			status, err := ParseStatus(s)
			if err != nil {
				return ActionItemPatch{}, err
			}
			patch.Status = &status
		case "priority":
			priority, err := ParsePriority(s)
			if err != nil {
				return ActionItemPatch{}, err
			}
			patch.Priority = &priority
		default:
			return ActionItemPatch{}, &ValidationError{Field: key, Reason: "is not an action item field"}
		}
	}
	return patch, nil
}
