package models

// ActionItemsResponse is returned by the analyze, list and search endpoints.
type ActionItemsResponse struct {
	Success     bool         `json:"success"`
	ActionItems []ActionItem `json:"action_items"`
	TotalCount  int          `json:"total_count"`
}

// NewActionItemsResponse never serialises a null list.
func NewActionItemsResponse(items []ActionItem) ActionItemsResponse {
	if items == nil {
		items = []ActionItem{}
	}
	return ActionItemsResponse{Success: true, ActionItems: items, TotalCount: len(items)}
}

type ActionItemResponse struct {
	Success    bool       `json:"success"`
	ActionItem ActionItem `json:"action_item"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

// HealthResponse reports the reachability of each outbound dependency.
// Status is always "healthy"; the per-dependency fields carry the detail.
type HealthResponse struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	OpenAIStatus   string `json:"openai_status"`
	DatabaseStatus string `json:"database_status"`
	SearchStatus   string `json:"search_status"`
	Environment    string `json:"environment"`
}

// RootResponse describes the API at GET /.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
