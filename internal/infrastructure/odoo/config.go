package odoo

import (
	"errors"
	"strings"
	"time"

	"github.com/erp/syncbridge/internal/infrastructure/config"
)

// Config holds configuration for the Odoo external API
type Config struct {
	// URL is the Odoo root, e.g. https://erp.example.com
	URL      string
	DB       string
	Username string
	Password string
	// Timeout bounds one operation, authentication included
	Timeout time.Duration
}

// DefaultTimeout is used when no timeout is configured
const DefaultTimeout = 30 * time.Second

const (
	commonEndpoint = "/xmlrpc/2/common"
	objectEndpoint = "/xmlrpc/2/object"
)

// Errors for Odoo configuration
var (
	ErrConfigMissingURL         = errors.New("odoo: URL is required")
	ErrConfigMissingDB          = errors.New("odoo: database is required")
	ErrConfigMissingCredentials = errors.New("odoo: username and password are required")
)

// FromAppConfig builds the client configuration from the application settings
func FromAppConfig(cfg config.OdooConfig) *Config {
	c := &Config{
		URL:      strings.TrimRight(cfg.URL, "/"),
		DB:       cfg.DB,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.Timeout,
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// IsConfigured reports whether every credential is present
func (c *Config) IsConfigured() bool {
	return c != nil && c.URL != "" && c.DB != "" && c.Username != "" && c.Password != ""
}

// Validate checks the required fields and applies defaults
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigMissingURL
	}
	if c.DB == "" {
		return ErrConfigMissingDB
	}
	if c.Username == "" || c.Password == "" {
		return ErrConfigMissingCredentials
	}
	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

func (c *Config) commonURL() string {
	return c.URL + commonEndpoint
}

func (c *Config) objectURL() string {
	return c.URL + objectEndpoint
}
