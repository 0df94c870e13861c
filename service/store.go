package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
)

// ActionItemStore is the persistence gateway for action items.
//
// The store owns timestamps: created_at and updated_at are taken from its own
// clock, never from the caller. Every transport failure is a *PersistenceFailure.
type ActionItemStore interface {
	CreateOne(ctx context.Context, item model.ActionItem) (model.ActionItem, error)

	// CreateMany inserts items in one round trip. All items share one timestamp.
	CreateMany(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error)

	// GetAll returns every item, newest first.
	GetAll(ctx context.Context) ([]model.ActionItem, error)

	// UpdateOne applies patch and stamps updated_at. It returns (nil, nil) when no row matched.
	UpdateOne(ctx context.Context, id string, patch model.ActionItemPatch) (*model.ActionItem, error)

	// DeleteOne reports transport success only. The backing API does not say
	// whether a row existed, so true is not proof of prior existence.
	DeleteOne(ctx context.Context, id string) (bool, error)

	TestConnection(ctx context.Context) bool
}

// timestampLayouts covers PostgREST timestamptz output and naive timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

// storeTime reads the store clock truncated to the microsecond precision of timestamptz.
func storeTime(clock func() time.Time) time.Time {
	return clock().UTC().Truncate(time.Microsecond)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// coerceEnums maps out-of-range stored values onto the defaults so the entity
// invariants hold for everything leaving the gateway.
func coerceEnums(item *model.ActionItem, logger *zap.Logger) {
	if _, err := model.ParseStatus(string(item.Status)); err != nil {
		logger.Warn("coercing stored status", zap.String("id", item.ID), zap.String("status", string(item.Status)))
		item.Status = model.StatusPending
	}
	if _, err := model.ParsePriority(string(item.Priority)); err != nil {
		logger.Warn("coercing stored priority", zap.String("id", item.ID), zap.String("priority", string(item.Priority)))
		item.Priority = model.PriorityMedium
	}
}

// stampBatch copies items and sets both timestamps to now.
func stampBatch(items []model.ActionItem, now time.Time) []model.ActionItem {
	stamped := make([]model.ActionItem, len(items))
	for i, item := range items {
		ts := now
		item.CreatedAt = now
		item.UpdatedAt = &ts
		stamped[i] = item
	}
	return stamped
}
