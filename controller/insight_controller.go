package controller

import (
	"context"
	"net/http"
	"strings"

	model "github.com/Itish41/InsightBoard/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const minTranscriptLength = 10

// InsightService is what the HTTP layer needs from the orchestrator.
type InsightService interface {
	AnalyzeTranscript(ctx context.Context, transcript string) ([]model.ActionItem, error)
	GetAllActionItems(ctx context.Context) ([]model.ActionItem, error)
	UpdateActionItem(ctx context.Context, id string, patch model.ActionItemPatch) (model.ActionItem, error)
	DeleteActionItem(ctx context.Context, id string) error
	SearchActionItems(ctx context.Context, query string) ([]model.ActionItem, error)
	Health(ctx context.Context) model.HealthResponse
}

// InsightController manages HTTP requests for transcripts and action items
type InsightController struct {
	service InsightService
	logger  *zap.Logger
}

// NewInsightController initializes the controller with the service
func NewInsightController(service InsightService, logger *zap.Logger) *InsightController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightController{service: service, logger: logger.Named("controller")}
}

type analyzeRequest struct {
	Transcript *string `json:"transcript"`
}

// Root describes the API
func (c *InsightController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.RootResponse{
		Message: "Welcome to InsightBoard AI API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"health":             "/api/health",
			"analyze_transcript": "/api/transcripts/analyze",
			"action_items":       "/api/action-items",
		},
	})
}

// Health reports the status of the LLM and the database
func (c *InsightController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Health(ctx.Request.Context()))
}

// AnalyzeTranscript extracts action items from a meeting transcript
func (c *InsightController) AnalyzeTranscript(ctx *gin.Context) {
	var req analyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.respondError(ctx, "Invalid request body", model.NewValidationError("body", err.Error()))
		return
	}
	if req.Transcript == nil {
		c.respondError(ctx, "Invalid request body", model.NewValidationError("transcript", "is required"))
		return
	}
	transcript := strings.TrimSpace(*req.Transcript)
	if len([]rune(transcript)) < minTranscriptLength {
		c.respondError(ctx, "Invalid transcript",
			model.NewValidationError("transcript", "must be at least 10 characters"))
		return
	}

	items, err := c.service.AnalyzeTranscript(ctx.Request.Context(), transcript)
	if err != nil {
		c.respondError(ctx, "Failed to analyze transcript", err)
		return
	}
	ctx.JSON(http.StatusOK, model.NewActionItemsResponse(items))
}
