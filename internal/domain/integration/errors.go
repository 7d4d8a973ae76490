package integration

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Integration Errors
// ---------------------------------------------------------------------------

var (
	// Platform errors
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("integration: platform authentication failed")

	// Lookup errors
	ErrProductNotFound  = errors.New("integration: product not found")
	ErrOrderNotFound    = errors.New("integration: order not found")
	ErrPaymentNotFound  = errors.New("integration: payment not found")
	ErrCustomerNotFound = errors.New("integration: customer not found")

	// Sync errors
	ErrInvalidSKU = errors.New("integration: SKU must not be empty")
	// ErrUnfilterableReference marks a reference that cannot be matched exactly
	// because it carries storefront filter operators ("|", "[" or "]").
	ErrUnfilterableReference = errors.New("integration: reference contains filter operators")
	ErrNegativeAmount        = errors.New("integration: price and quantity must not be negative")
	ErrSKUClaimHeld          = errors.New("integration: SKU sync already in progress")
	ErrERPWriteFailed        = errors.New("integration: ERP write failed")
)

// StatusError reports a non-success HTTP status returned by an upstream system.
// It unwraps to ErrPlatformRequestFailed so callers can match either.
type StatusError struct {
	System     System
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.System, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.System, e.StatusCode, e.Body)
}

// Unwrap returns ErrPlatformRequestFailed
func (e *StatusError) Unwrap() error {
	return ErrPlatformRequestFailed
}

// NotConfiguredError reports an upstream system whose connection settings are missing.
// It unwraps to ErrPlatformNotConfigured.
type NotConfiguredError struct {
	System System
}

// NewNotConfiguredError creates a NotConfiguredError for the system
func NewNotConfiguredError(system System) error {
	return &NotConfiguredError{System: system}
}

// Error implements the error interface
func (e *NotConfiguredError) Error() string {
	return e.System.DisplayName() + " not configured"
}

// Unwrap returns ErrPlatformNotConfigured
func (e *NotConfiguredError) Unwrap() error {
	return ErrPlatformNotConfigured
}

// Configurable is implemented by adapters that may run without connection settings
type Configurable interface {
	IsConfigured() bool
}

// RequireConfigured returns a NotConfiguredError when the adapter reports it is not configured
func RequireConfigured(system System, adapter any) error {
	if c, ok := adapter.(Configurable); ok && !c.IsConfigured() {
		return NewNotConfiguredError(system)
	}
	return nil
}

// UpstreamStatus extracts the upstream HTTP status from err, if any.
func UpstreamStatus(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// System identifies one side of the bridge
// ---------------------------------------------------------------------------

// System identifies an upstream system
type System string

const (
	// SystemERP is the Odoo ERP
	SystemERP System = "odoo"
	// SystemStorefront is the PrestaShop storefront
	SystemStorefront System = "prestashop"
)

// String returns the string representation of System
func (s System) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the system
func (s System) DisplayName() string {
	switch s {
	case SystemERP:
		return "Odoo"
	case SystemStorefront:
		return "PrestaShop"
	default:
		return string(s)
	}
}
