package shared

import "fmt"

// Codes carried by DomainError. The HTTP layer maps them onto envelope codes.
const (
	CodeInvalidInput = "INVALID_INPUT"
)

// DomainError is a caller-facing error that already knows its category.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with a fixed message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Invalid reports rejected caller input, such as a malformed bulk sync body.
func Invalid(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf(format, args...))
}
