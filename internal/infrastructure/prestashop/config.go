package prestashop

import (
	"errors"
	"strings"
	"time"

	"github.com/erp/syncbridge/internal/infrastructure/config"
)

// Config holds configuration for the PrestaShop webservice
type Config struct {
	// BaseURL is the shop root, e.g. https://shop.example.com
	BaseURL string
	// APIKey is the webservice key sent as ws_key
	APIKey string
	// Timeout bounds every request unless the context carries its own upstream timeout
	Timeout time.Duration
	// RequestsPerSecond caps outgoing requests. Zero disables the limit.
	RequestsPerSecond float64
	// Burst is the limiter bucket size
	Burst int
}

const (
	// DefaultTimeout is used when no timeout is configured
	DefaultTimeout = 20 * time.Second
	// DefaultBurst is used when a rate is set without a burst
	DefaultBurst = 1
)

// Errors for PrestaShop configuration
var (
	ErrConfigMissingBaseURL = errors.New("prestashop: base URL is required")
	ErrConfigMissingAPIKey  = errors.New("prestashop: API key is required")
)

// NewConfig creates a PrestaShop configuration with defaults
func NewConfig(baseURL, apiKey string) *Config {
	return &Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Timeout: DefaultTimeout,
	}
}

// FromAppConfig builds the client configuration from the application settings
func FromAppConfig(cfg config.PrestaShopConfig) *Config {
	c := NewConfig(cfg.BaseURL, cfg.APIKey)
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	c.RequestsPerSecond = cfg.RequestsPerSecond
	c.Burst = cfg.Burst
	return c
}

// IsConfigured reports whether the base URL and key are present
func (c *Config) IsConfigured() bool {
	return c != nil && c.BaseURL != "" && c.APIKey != ""
}

// Validate checks the required fields and applies defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond > 0 && c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
}
