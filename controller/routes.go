package controller

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API. analyzeLimit guards the LLM-backed endpoint and may be nil.
func RegisterRoutes(r gin.IRouter, c *InsightController, analyzeLimit gin.HandlerFunc) {
	r.GET("/", c.Root)

	api := r.Group("/api")
	api.GET("/health", c.Health)

	analyze := []gin.HandlerFunc{c.AnalyzeTranscript}
	if analyzeLimit != nil {
		analyze = append([]gin.HandlerFunc{analyzeLimit}, analyze...)
	}
	api.POST("/transcripts/analyze", analyze...)

	api.GET("/action-items", c.GetActionItems)
	api.GET("/action-items/search", c.SearchActionItems)
	api.PUT("/action-items/:id", c.UpdateActionItem)
	api.PATCH("/action-items/:id", c.UpdateActionItem)
	api.DELETE("/action-items/:id", c.DeleteActionItem)
}
