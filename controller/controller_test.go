package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	model "github.com/Itish41/InsightBoard/models"
	service "github.com/Itish41/InsightBoard/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockInsightService implements InsightService with testify/mock
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) AnalyzeTranscript(ctx context.Context, transcript string) ([]model.ActionItem, error) {
	args := m.Called(ctx, transcript)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockInsightService) GetAllActionItems(ctx context.Context) ([]model.ActionItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockInsightService) UpdateActionItem(ctx context.Context, id string, patch model.ActionItemPatch) (model.ActionItem, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.ActionItem), args.Error(1)
}

func (m *MockInsightService) DeleteActionItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInsightService) SearchActionItems(ctx context.Context, query string) ([]model.ActionItem, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]model.ActionItem)
	return items, args.Error(1)
}

func (m *MockInsightService) Health(ctx context.Context) model.HealthResponse {
	return m.Called(ctx).Get(0).(model.HealthResponse)
}

func newTestRouter(svc InsightService) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, NewInsightController(svc, nil), nil)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func item(id, text string) model.ActionItem {
	updated := FixedTime
	return model.ActionItem{
		ID:        id,
		Text:      text,
		Status:    model.StatusPending,
		Priority:  model.PriorityMedium,
		CreatedAt: FixedTime,
		UpdatedAt: &updated,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", model.NewValidationError("status", "bad"), http.StatusBadRequest},
		{"not found", fmt.Errorf("update x: %w", service.ErrNotFound), http.StatusNotFound},
		{"unavailable", fmt.Errorf("%w: %w", service.ErrServiceUnavailable, &service.ConfigurationError{Component: "llm"}), http.StatusServiceUnavailable},
		{"generation", &service.GenerationFailure{Err: errors.New("x")}, http.StatusBadGateway},
		{"persistence", &service.PersistenceFailure{Op: "get_all", Err: errors.New("x")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRoot(t *testing.T) {
	w := doRequest(newTestRouter(&MockInsightService{}), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to InsightBoard AI API")
}

func TestHealth(t *testing.T) {
	svc := &MockInsightService{}
	svc.On("Health", mock.Anything).Return(model.HealthResponse{
		Status: "healthy", Service: "InsightBoard AI API", OpenAIStatus: "connected",
		DatabaseStatus: "disconnected", SearchStatus: "not_configured", Environment: "development",
	})

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["openai_status"])
	assert.Equal(t, "disconnected", body["database_status"])
}

func TestAnalyzeTranscript(t *testing.T) {
	transcript := "Alice: I'll send the deck by Friday. Bob: I'll book the room."

	tests := []struct {
		name       string
		body       string
		setup      func(m *MockInsightService)
		wantStatus int
		wantCount  int
	}{
		{
			name: "success",
			body: `{"transcript": "  ` + transcript + `  "}`,
			setup: func(m *MockInsightService) {
				m.On("AnalyzeTranscript", mock.Anything, transcript).
					Return([]model.ActionItem{item("1", "Alice sends the deck"), item("2", "Bob books the room")}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name: "no items",
			body: `{"transcript": "` + transcript + `"}`,
			setup: func(m *MockInsightService) {
				m.On("AnalyzeTranscript", mock.Anything, transcript).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{name: "too short", body: `{"transcript": "   hi there   "}`, wantStatus: http.StatusBadRequest},
		{name: "missing field", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"transcript":`, wantStatus: http.StatusBadRequest},
		{
			name: "generation failure",
			body: `{"transcript": "` + transcript + `"}`,
			setup: func(m *MockInsightService) {
				m.On("AnalyzeTranscript", mock.Anything, transcript).
					Return(nil, &service.GenerationFailure{Raw: "nope", Err: errors.New("reply is not valid JSON")})
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "llm not configured",
			body: `{"transcript": "` + transcript + `"}`,
			setup: func(m *MockInsightService) {
				m.On("AnalyzeTranscript", mock.Anything, transcript).
					Return(nil, fmt.Errorf("%w: %w", service.ErrServiceUnavailable, &service.ConfigurationError{Component: "llm", Missing: []string{"OPENAI_API_KEY"}}))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockInsightService{}
			if tt.setup != nil {
				tt.setup(svc)
			}

			w := doRequest(newTestRouter(svc), http.MethodPost, "/api/transcripts/analyze", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				body := decodeError(t, w)
				assert.NotEmpty(t, body.Error)
				if tt.setup == nil {
					svc.AssertNotCalled(t, "AnalyzeTranscript", mock.Anything, mock.Anything)
				}
				return
			}

			var body model.ActionItemsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.True(t, body.Success)
			assert.Equal(t, tt.wantCount, body.TotalCount)
			assert.Len(t, body.ActionItems, tt.wantCount)
			assert.NotContains(t, w.Body.String(), `"action_items":null`)
			svc.AssertExpectations(t)
		})
	}
}

func TestGetActionItems(t *testing.T) {
	svc := &MockInsightService{}
	svc.On("GetAllActionItems", mock.Anything).Return([]model.ActionItem{item("2", "newer"), item("1", "older")}, nil)

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/action-items", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body model.ActionItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, "2", body.ActionItems[0].ID)
	assert.Contains(t, w.Body.String(), `"createdAt":"2025-03-05T00:00:00Z"`)
}

func TestGetActionItemsPersistenceFailure(t *testing.T) {
	svc := &MockInsightService{}
	svc.On("GetAllActionItems", mock.Anything).
		Return(nil, &service.PersistenceFailure{Op: "get_all", StatusCode: 500, Err: errors.New("db down")})

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/action-items", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Failed to retrieve action items", body.Error)
	assert.Contains(t, body.Detail, "db down")
}

func TestSearchActionItems(t *testing.T) {
	svc := &MockInsightService{}
	svc.On("SearchActionItems", mock.Anything, "deck").Return([]model.ActionItem{item("1", "Send the deck")}, nil)
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/action-items/search?q=deck", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Send the deck")

	w = doRequest(r, http.MethodGet, "/api/action-items/search?q=%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateActionItem(t *testing.T) {
	completed := model.StatusCompleted
	high := model.PriorityHigh

	tests := []struct {
		name       string
		method     string
		body       string
		setup      func(m *MockInsightService)
		wantStatus int
	}{
		{
			name:   "status and priority",
			method: http.MethodPut,
			body:   `{"status": "completed", "priority": "high", "updatedAt": "ignored"}`,
			setup: func(m *MockInsightService) {
				updated := item("abc", "Ship it")
				updated.Status, updated.Priority = completed, high
				m.On("UpdateActionItem", mock.Anything, "abc", model.ActionItemPatch{Status: &completed, Priority: &high}).
					Return(updated, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "patch verb",
			method: http.MethodPatch,
			body:   `{"status": "completed"}`,
			setup: func(m *MockInsightService) {
				m.On("UpdateActionItem", mock.Anything, "abc", model.ActionItemPatch{Status: &completed}).
					Return(item("abc", "Ship it"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{name: "invalid status", method: http.MethodPut, body: `{"status": "done"}`, wantStatus: http.StatusBadRequest},
		{name: "immutable id", method: http.MethodPut, body: `{"id": "other"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPut, body: `{"owner": "alice"}`, wantStatus: http.StatusBadRequest},
		{name: "not an object", method: http.MethodPut, body: `["status"]`, wantStatus: http.StatusBadRequest},
		{
			name:   "not found",
			method: http.MethodPut,
			body:   `{"status": "completed"}`,
			setup: func(m *MockInsightService) {
				m.On("UpdateActionItem", mock.Anything, "abc", mock.Anything).
					Return(model.ActionItem{}, fmt.Errorf("update abc: %w", service.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockInsightService{}
			if tt.setup != nil {
				tt.setup(svc)
			}

			w := doRequest(newTestRouter(svc), tt.method, "/api/action-items/abc", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				var body model.ActionItemResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.True(t, body.Success)
				assert.Equal(t, "abc", body.ActionItem.ID)
				svc.AssertExpectations(t)
				return
			}
			decodeError(t, w)
			if tt.setup == nil {
				svc.AssertNotCalled(t, "UpdateActionItem", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDeleteActionItem(t *testing.T) {
	svc := &MockInsightService{}
	svc.On("DeleteActionItem", mock.Anything, "abc").Return(nil)
	svc.On("DeleteActionItem", mock.Anything, "gone").Return(fmt.Errorf("delete gone: %w", service.ErrNotFound))
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodDelete, "/api/action-items/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body model.DeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.DeleteResponse{Success: true, Deleted: true, ID: "abc"}, body)

	w = doRequest(r, http.MethodDelete, "/api/action-items/gone", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
