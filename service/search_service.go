package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	model "github.com/Itish41/InsightBoard/models"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

const defaultSearchIndex = "action_items"

// ActionItemIndex keeps a searchable copy of action items.
type ActionItemIndex interface {
	IndexItems(ctx context.Context, items []model.ActionItem) error
	DeleteItem(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]model.ActionItem, error)
}

type SearchConfig struct {
	URL   string
	Index string
}

// SearchIndex is the Elasticsearch implementation of ActionItemIndex.
type SearchIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *zap.Logger
}

func NewSearchIndex(cfg SearchConfig, logger *zap.Logger) (*SearchIndex, error) {
	if cfg.URL == "" {
		return nil, &ConfigurationError{Component: "search index", Missing: []string{"ELASTICSEARCH_URL"}}
	}
	index := cfg.Index
	if index == "" {
		index = defaultSearchIndex
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{cfg.URL}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchIndex{es: es, index: index, logger: logger.Named("search")}, nil
}

// IndexItems writes items with one bulk request, keyed by item id.
func (s *SearchIndex) IndexItems(ctx context.Context, items []model.ActionItem) error {
	if len(items) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, item := range items {
		meta := map[string]interface{}{"index": map[string]interface{}{"_id": item.ID}}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("failed to encode bulk metadata: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(item); err != nil {
			return fmt.Errorf("failed to encode action item %s: %w", item.ID, err)
		}
	}

	res, err := s.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.es.Bulk.WithIndex(s.index),
		s.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk index failed: %s", res.String())
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if bulk.Errors {
		return fmt.Errorf("elasticsearch rejected some of %d action items", len(items))
	}

	s.logger.Debug("indexed action items", zap.Int("count", len(items)))
	return nil
}

// DeleteItem removes one document. A missing document is not an error.
func (s *SearchIndex) DeleteItem(ctx context.Context, id string) error {
	res, err := s.es.Delete(s.index, id, s.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch delete failed: %s", res.String())
	}
	return nil
}

// Search runs a full-text match against item text, best match first.
func (s *SearchIndex) Search(ctx context.Context, query string) ([]model.ActionItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.ActionItem{}, nil
	}

	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"text^3", "status", "priority"},
				"fuzziness": "AUTO",
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source model.ActionItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := make([]model.ActionItem, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		if hit.Source.Validate() != nil {
			continue
		}
		items = append(items, hit.Source)
	}
	s.logger.Debug("search completed", zap.String("query", query), zap.Int("hits", len(items)))
	return items, nil
}
