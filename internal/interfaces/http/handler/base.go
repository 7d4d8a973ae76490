package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/syncbridge/internal/infrastructure/logger"
	"github.com/erp/syncbridge/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMessage sends a success response with a message
func (h *BaseHandler) SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMessage(message, data))
}

// Skipped sends a skip response
func (h *BaseHandler) Skipped(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewSkipResponse(message))
}

// HandleError converts application errors to the error envelope
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := dto.ClassifyError(err)
	log := logger.GetGinLogger(c)
	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Int("status", apiErr.HTTPStatus), zap.Error(err))
	} else {
		log.Debug("Request rejected", zap.Int("status", apiErr.HTTPStatus), zap.Error(err))
	}
	_ = c.Error(err)

	c.JSON(apiErr.HTTPStatus, dto.NewErrorResponseWithDetail(apiErr.Info.Code, apiErr.Info.Message, apiErr.Info.Detail))
}
