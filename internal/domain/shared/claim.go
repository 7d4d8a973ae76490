package shared

import (
	"context"
	"time"
)

// ClaimStore grants short-lived exclusive claims on string keys.
// A claim is identified by the token returned from Claim and expires after its TTL
// even if the holder never releases it.
type ClaimStore interface {
	// Claim tries to take the key for ttl.
	// Returns the claim token and true when acquired, or "" and false when another holder owns it.
	Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error)

	// Release drops the claim if it is still held with the given token.
	Release(ctx context.Context, key, token string) error

	// Close closes the store and releases resources
	Close() error
}

// ClaimConfig holds configuration for key claims
type ClaimConfig struct {
	// TTL bounds how long a crashed holder can block a key
	TTL time.Duration

	// Enabled determines whether claims are taken at all
	Enabled bool
}

// DefaultClaimConfig returns the default claim configuration
func DefaultClaimConfig() ClaimConfig {
	return ClaimConfig{
		TTL:     5 * time.Minute,
		Enabled: true,
	}
}
