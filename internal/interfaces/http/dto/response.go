package dto

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Response represents the uniform API envelope
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
	Errors  []ErrorInfo `json:"errors"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// SkipResponse is returned when a single-product sync decided not to touch the storefront
type SkipResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
		Errors: []ErrorInfo{},
	}
}

// NewSuccessResponseWithMessage creates a success response carrying a human-readable message
func NewSuccessResponseWithMessage(message string, data interface{}) Response {
	resp := NewSuccessResponse(data)
	resp.Message = message
	return resp
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithDetail(code, message, "")
}

// NewErrorResponseWithDetail creates an error response with an upstream detail
func NewErrorResponseWithDetail(code, message, detail string) Response {
	return Response{
		Status: StatusError,
		Data:   nil,
		Errors: []ErrorInfo{{
			Code:    code,
			Message: message,
			Detail:  detail,
		}},
	}
}

// NewSkipResponse creates a skip response
func NewSkipResponse(message string) SkipResponse {
	return SkipResponse{
		Status:  StatusSkipped,
		Message: message,
	}
}

// BulkSyncRequest is the optional body of a bulk catalog sync
type BulkSyncRequest struct {
	References []string `json:"references" binding:"omitempty,dive,max=64"`
}
