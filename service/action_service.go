package services

import (
	"context"
	"fmt"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
)

// GetAllActionItems returns every stored item, newest first.
func (s *TranscriptService) GetAllActionItems(ctx context.Context) ([]model.ActionItem, error) {
	store, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	items, err := store.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve action items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// UpdateActionItem applies a validated patch. ErrNotFound when no item has the id.
func (s *TranscriptService) UpdateActionItem(ctx context.Context, id string, patch model.ActionItemPatch) (model.ActionItem, error) {
	store, err := s.store.Get()
	if err != nil {
		return model.ActionItem{}, err
	}
	updated, err := store.UpdateOne(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update action item", zap.String("id", id), zap.Error(err))
		return model.ActionItem{}, err
	}
	if updated == nil {
		return model.ActionItem{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	s.indexItems(ctx, []model.ActionItem{*updated})
	s.logger.Info("updated action item", zap.String("id", id), zap.Any("fields", patch.Fields()))
	return *updated, nil
}

// DeleteActionItem removes an item. The store cannot tell a deleted row from a
// missing one, so a missing id usually still succeeds.
func (s *TranscriptService) DeleteActionItem(ctx context.Context, id string) error {
	store, err := s.store.Get()
	if err != nil {
		return err
	}
	deleted, err := store.DeleteOne(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete action item", zap.String("id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}

	s.unindexItem(ctx, id)
	s.logger.Info("deleted action item", zap.String("id", id))
	return nil
}

// SearchActionItems runs a full-text query against the search index.
func (s *TranscriptService) SearchActionItems(ctx context.Context, query string) ([]model.ActionItem, error) {
	index, err := s.index.Get()
	if err != nil {
		return nil, err
	}
	items, err := index.Search(ctx, query)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return items, nil
}
