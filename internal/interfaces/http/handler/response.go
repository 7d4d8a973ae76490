package handler

import "github.com/erp/syncbridge/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Uniform API envelope with typed data field
type APIResponse[T any] struct {
	Status  string          `json:"status" example:"success"`
	Message string          `json:"message,omitempty"`
	Data    T               `json:"data"`
	Errors  []dto.ErrorInfo `json:"errors"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Error envelope
type ErrorResponse struct {
	Status string          `json:"status" example:"error"`
	Data   any             `json:"data"`
	Errors []dto.ErrorInfo `json:"errors"`
}
