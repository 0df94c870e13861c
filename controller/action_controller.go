package controller

import (
	"net/http"
	"strings"

	model "github.com/Itish41/InsightBoard/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetActionItems lists every stored action item, newest first
func (c *InsightController) GetActionItems(ctx *gin.Context) {
	items, err := c.service.GetAllActionItems(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, "Failed to retrieve action items", err)
		return
	}
	ctx.JSON(http.StatusOK, model.NewActionItemsResponse(items))
}

// SearchActionItems runs a full-text search over action item text
func (c *InsightController) SearchActionItems(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if query == "" {
		c.respondError(ctx, "Invalid search", model.NewValidationError("q", "is required"))
		return
	}
	items, err := c.service.SearchActionItems(ctx.Request.Context(), query)
	if err != nil {
		c.respondError(ctx, "Failed to search action items", err)
		return
	}
	ctx.JSON(http.StatusOK, model.NewActionItemsResponse(items))
}

// UpdateActionItem applies a partial update to one action item
func (c *InsightController) UpdateActionItem(ctx *gin.Context) {
	id := ctx.Param("id")
	if strings.TrimSpace(id) == "" {
		c.respondError(ctx, "Action ID required", model.NewValidationError("id", "is required"))
		return
	}

	var raw map[string]interface{}
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		c.respondError(ctx, "Invalid request body", model.NewValidationError("body", err.Error()))
		return
	}
	patch, err := model.ParseActionItemPatch(raw)
	if err != nil {
		c.respondError(ctx, "Invalid update", err)
		return
	}

	item, err := c.service.UpdateActionItem(ctx.Request.Context(), id, patch)
	if err != nil {
		c.respondError(ctx, "Failed to update action item", err)
		return
	}
	c.logger.Info("action item updated", zap.String("id", id))
	ctx.JSON(http.StatusOK, model.ActionItemResponse{Success: true, ActionItem: item})
}

// DeleteActionItem removes one action item
func (c *InsightController) DeleteActionItem(ctx *gin.Context) {
	id := ctx.Param("id")
	if strings.TrimSpace(id) == "" {
		c.respondError(ctx, "Action ID required", model.NewValidationError("id", "is required"))
		return
	}
	if err := c.service.DeleteActionItem(ctx.Request.Context(), id); err != nil {
		c.respondError(ctx, "Failed to delete action item", err)
		return
	}
	ctx.JSON(http.StatusOK, model.DeleteResponse{Success: true, Deleted: true, ID: id})
}
