package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
)

const (
	actionItemsTable    = "action_items"
	defaultStoreTimeout = 10 * time.Second
	maxErrorBodyBytes   = 2048
)

// SupabaseConfig addresses the PostgREST endpoint of a Supabase project.
type SupabaseConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// SupabaseStore implements ActionItemStore over the Supabase REST API.
type SupabaseStore struct {
	endpoint   string
	key        string
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

// supabaseRow is the wire shape of one action_items row.
type supabaseRow struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func NewSupabaseStore(cfg SupabaseConfig, logger *zap.Logger) (*SupabaseStore, error) {
	var missing []string
	if cfg.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.Key == "" {
		missing = append(missing, "SUPABASE_KEY")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Component: "supabase store", Missing: missing}
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid SUPABASE_URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupabaseStore{
		endpoint:   strings.TrimRight(cfg.URL, "/") + "/rest/v1/" + actionItemsTable,
		key:        cfg.Key,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		logger:     logger.Named("supabase"),
	}, nil
}

func (s *SupabaseStore) CreateOne(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	stamped := stampBatch([]model.ActionItem{item}, storeTime(s.now))
	if err := s.do(ctx, "create", http.MethodPost, nil, toSupabaseRow(stamped[0]), nil); err != nil {
		return model.ActionItem{}, err
	}
	s.logger.Info("created action item", zap.String("id", item.ID))
	return stamped[0], nil
}

func (s *SupabaseStore) CreateMany(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	if len(items) == 0 {
		return []model.ActionItem{}, nil
	}
	stamped := stampBatch(items, storeTime(s.now))
	rows := make([]supabaseRow, len(stamped))
	for i, item := range stamped {
		rows[i] = toSupabaseRow(item)
	}
	if err := s.do(ctx, "create_many", http.MethodPost, nil, rows, nil); err != nil {
		return nil, err
	}
	s.logger.Info("created action items", zap.Int("count", len(stamped)))
	return stamped, nil
}

func (s *SupabaseStore) GetAll(ctx context.Context) ([]model.ActionItem, error) {
	var rows []supabaseRow
	query := url.Values{"select": {"*"}, "order": {"created_at.desc"}}
	if err := s.do(ctx, "get_all", http.MethodGet, query, nil, &rows); err != nil {
		return nil, err
	}
	items := s.rehydrate(rows)
	s.logger.Info("retrieved action items", zap.Int("count", len(items)))
	return items, nil
}

func (s *SupabaseStore) UpdateOne(ctx context.Context, id string, patch model.ActionItemPatch) (*model.ActionItem, error) {
	fields := patch.Fields()
	fields["updated_at"] = formatTimestamp(storeTime(s.now))

	var rows []supabaseRow
	if err := s.do(ctx, "update", http.MethodPatch, idFilter(id), fields, &rows); err != nil {
		return nil, err
	}
	items := s.rehydrate(rows)
	if len(items) == 0 {
		s.logger.Warn("no action item matched update", zap.String("id", id))
		return nil, nil
	}
	s.logger.Info("updated action item", zap.String("id", id))
	return &items[0], nil
}

func (s *SupabaseStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	if err := s.do(ctx, "delete", http.MethodDelete, idFilter(id), nil, nil); err != nil {
		return false, err
	}
	s.logger.Info("deleted action item", zap.String("id", id))
	return true, nil
}

func (s *SupabaseStore) TestConnection(ctx context.Context) bool {
	var rows []map[string]interface{}
	query := url.Values{"select": {"id"}, "limit": {"1"}}
	if err := s.do(ctx, "test_connection", http.MethodGet, query, nil, &rows); err != nil {
		s.logger.Warn("database connection test failed", zap.Error(err))
		return false
	}
	return true
}

func idFilter(id string) url.Values {
	return url.Values{"id": {"eq." + id}}
}

// do sends one request to the collection and decodes the JSON reply into out when out is non-nil.
func (s *SupabaseStore) do(ctx context.Context, op, method string, query url.Values, body, out interface{}) error {
	target := s.endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &PersistenceFailure{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &PersistenceFailure{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &PersistenceFailure{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &PersistenceFailure{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(respBody) > maxErrorBodyBytes {
			respBody = respBody[:maxErrorBodyBytes]
		}
		return &PersistenceFailure{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &PersistenceFailure{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}

func toSupabaseRow(item model.ActionItem) supabaseRow {
	row := supabaseRow{
		ID:        item.ID,
		Text:      item.Text,
		Status:    string(item.Status),
		Priority:  string(item.Priority),
		CreatedAt: formatTimestamp(item.CreatedAt),
	}
	if item.UpdatedAt != nil {
		ts := formatTimestamp(*item.UpdatedAt)
		row.UpdatedAt = &ts
	}
	return row
}

// rehydrate converts rows to entities, skipping rows that cannot satisfy the invariants.
func (s *SupabaseStore) rehydrate(rows []supabaseRow) []model.ActionItem {
	items := make([]model.ActionItem, 0, len(rows))
	for _, row := range rows {
		item, err := fromSupabaseRow(row)
		if err != nil {
			s.logger.Warn("skipping unreadable action item row", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		coerceEnums(&item, s.logger)
		items = append(items, item)
	}
	return items
}

func fromSupabaseRow(row supabaseRow) (model.ActionItem, error) {
	if row.ID == "" {
		return model.ActionItem{}, fmt.Errorf("row has no id")
	}
	if strings.TrimSpace(row.Text) == "" {
		return model.ActionItem{}, fmt.Errorf("row has empty text")
	}
	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return model.ActionItem{}, fmt.Errorf("created_at: %w", err)
	}
	item := model.ActionItem{
		ID:        row.ID,
		Text:      row.Text,
		Status:    model.Status(row.Status),
		Priority:  model.Priority(row.Priority),
		CreatedAt: createdAt,
	}
	if row.UpdatedAt != nil && *row.UpdatedAt != "" {
		updatedAt, err := parseTimestamp(*row.UpdatedAt)
		if err != nil {
			return model.ActionItem{}, fmt.Errorf("updated_at: %w", err)
		}
		item.UpdatedAt = &updatedAt
	}
	return item, nil
}
