package controller

import (
	"errors"
	"net/http"

	model "github.com/Itish41/InsightBoard/models"
	service "github.com/Itish41/InsightBoard/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		validationErr  *model.ValidationError
		generationErr  *service.GenerationFailure
		persistenceErr *service.PersistenceFailure
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &generationErr), errors.As(err, &persistenceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (c *InsightController) respondError(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	fields := []zap.Field{zap.String("path", ctx.FullPath()), zap.Int("status", status), zap.Error(err)}
	if status >= http.StatusInternalServerError {
		c.logger.Error(message, fields...)
	} else {
		c.logger.Warn(message, fields...)
	}
	_ = ctx.Error(err)

	ctx.AbortWithStatusJSON(status, model.ErrorResponse{Success: false, Error: message, Detail: err.Error()})
}
