package dto

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erp/syncbridge/internal/domain/integration"
	"github.com/erp/syncbridge/internal/domain/shared"
)

// Error codes are the HTTP status rendered as a string, as existing consumers expect
const (
	ErrCodeBadRequest   = "400"
	ErrCodeUnauthorized = "401"
	ErrCodeNotFound     = "404"
	ErrCodeConflict     = "409"
	ErrCodeTooLarge     = "413"
	ErrCodeInternal     = "500"
	ErrCodeBadGateway   = "502"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadGateway:   http.StatusBadGateway,
}

// LegacyErrorCodeMapping maps shared.DomainError codes to envelope codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"INVALID_INPUT":    ErrCodeBadRequest,
	"VALIDATION_ERROR": ErrCodeBadRequest,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"CONFLICT":         ErrCodeConflict,
	"UNAUTHORIZED":     ErrCodeUnauthorized,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Numeric codes outside the table are used as-is when they are valid HTTP statuses.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if status, err := strconv.Atoi(code); err == nil && status >= 400 && status <= 599 {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code to its envelope code
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// APIError is an error already classified for the envelope
type APIError struct {
	HTTPStatus int
	Info       ErrorInfo
}

// ClassifyError maps an application error to its HTTP status and envelope error
func ClassifyError(err error) APIError {
	var notConfigured *integration.NotConfiguredError
	if errors.As(err, &notConfigured) {
		return newAPIError(http.StatusInternalServerError, notConfigured.Error(), "")
	}

	var statusErr *integration.StatusError
	if errors.As(err, &statusErr) {
		status := statusErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return newAPIError(status, statusErr.System.DisplayName()+" request failed", statusErr.Body)
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := NormalizeErrorCode(domainErr.Code)
		return APIError{
			HTTPStatus: GetHTTPStatus(code),
			Info:       ErrorInfo{Code: code, Message: domainErr.Message},
		}
	}

	switch {
	case errors.Is(err, integration.ErrPlatformNotConfigured):
		return newAPIError(http.StatusInternalServerError, "platform not configured", "")
	case errors.Is(err, integration.ErrProductNotFound):
		return newAPIError(http.StatusNotFound, "product not found", "")
	case errors.Is(err, integration.ErrOrderNotFound):
		return newAPIError(http.StatusNotFound, "order not found", "")
	case errors.Is(err, integration.ErrPaymentNotFound):
		return newAPIError(http.StatusNotFound, "payment not found", "")
	case errors.Is(err, integration.ErrCustomerNotFound):
		return newAPIError(http.StatusNotFound, "customers not found", "")
	case errors.Is(err, integration.ErrPlatformAuthFailed):
		return newAPIError(http.StatusUnauthorized, "upstream authentication failed", "")
	case errors.Is(err, integration.ErrInvalidSKU), errors.Is(err, integration.ErrNegativeAmount),
		errors.Is(err, integration.ErrUnfilterableReference):
		return newAPIError(http.StatusBadRequest, "invalid reference", err.Error())
	case errors.Is(err, integration.ErrSKUClaimHeld):
		return newAPIError(http.StatusConflict, "sync already in progress", "")
	case errors.Is(err, integration.ErrPlatformInvalidResponse):
		return newAPIError(http.StatusBadGateway, "invalid upstream response", err.Error())
	case errors.Is(err, integration.ErrERPWriteFailed):
		return newAPIError(http.StatusBadGateway, "ERP write failed", err.Error())
	case errors.Is(err, integration.ErrPlatformRequestFailed), errors.Is(err, integration.ErrPlatformUnavailable):
		return newAPIError(http.StatusBadGateway, "upstream unavailable", err.Error())
	}

	return newAPIError(http.StatusInternalServerError, "an unexpected error occurred", "")
}

func newAPIError(status int, message, detail string) APIError {
	return APIError{
		HTTPStatus: status,
		Info: ErrorInfo{
			Code:    strconv.Itoa(status),
			Message: message,
			Detail:  detail,
		},
	}
}
