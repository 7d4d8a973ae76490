package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BRIDGE_APP_NAME":                       os.Getenv("BRIDGE_APP_NAME"),
		"BRIDGE_APP_ENV":                        os.Getenv("BRIDGE_APP_ENV"),
		"BRIDGE_APP_PORT":                       os.Getenv("BRIDGE_APP_PORT"),
		"BRIDGE_LOG_LEVEL":                      os.Getenv("BRIDGE_LOG_LEVEL"),
		"BRIDGE_ODOO_URL":                       os.Getenv("BRIDGE_ODOO_URL"),
		"BRIDGE_ODOO_PASSWORD":                  os.Getenv("BRIDGE_ODOO_PASSWORD"),
		"BRIDGE_PRESTASHOP_TIMEOUT":             os.Getenv("BRIDGE_PRESTASHOP_TIMEOUT"),
		"BRIDGE_SYNC_LOCALE":                    os.Getenv("BRIDGE_SYNC_LOCALE"),
		"BRIDGE_SCHEDULER_ENABLED":              os.Getenv("BRIDGE_SCHEDULER_ENABLED"),
		"BRIDGE_SCHEDULER_CATALOG_INTERVAL":     os.Getenv("BRIDGE_SCHEDULER_CATALOG_INTERVAL"),
		"BRIDGE_TELEMETRY_SAMPLING_RATIO":       os.Getenv("BRIDGE_TELEMETRY_SAMPLING_RATIO"),
		"BRIDGE_HTTP_CORS_ALLOW_ORIGINS":        os.Getenv("BRIDGE_HTTP_CORS_ALLOW_ORIGINS"),
		"BRIDGE_PRESTASHOP_REQUESTS_PER_SECOND": os.Getenv("BRIDGE_PRESTASHOP_REQUESTS_PER_SECOND"),
		"ODOO_URL":                              os.Getenv("ODOO_URL"),
		"ODOO_DB":                               os.Getenv("ODOO_DB"),
		"ODOO_USER":                             os.Getenv("ODOO_USER"),
		"ODOO_PASSWORD":                         os.Getenv("ODOO_PASSWORD"),
		"PRESTASHOP_BASE_URL":                   os.Getenv("PRESTASHOP_BASE_URL"),
		"PRESTASHOP_API_KEY":                    os.Getenv("PRESTASHOP_API_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "syncbridge", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 20*time.Second, cfg.PrestaShop.Timeout)
		assert.Equal(t, 40*time.Second, cfg.Sync.SingleItemTimeout)
		assert.Equal(t, 5*time.Minute, cfg.Sync.ClaimTTL)
		assert.True(t, cfg.Sync.ClaimsEnabled)
		assert.Equal(t, "es", cfg.Sync.Locale)
		assert.Equal(t, "", cfg.Redis.Host)
		assert.False(t, cfg.Scheduler.Enabled)
		assert.Equal(t, 30*time.Minute, cfg.Scheduler.JobTimeout)
		assert.False(t, cfg.Odoo.IsConfigured())
		assert.False(t, cfg.PrestaShop.IsConfigured())
	})

	t.Run("missing upstream credentials do not fail loading", func(t *testing.T) {
		clearEnv()
		os.Setenv("ODOO_URL", "http://odoo.local:8069")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Odoo.IsConfigured())
	})

	t.Run("loads unprefixed upstream credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("ODOO_URL", "http://odoo.local:8069")
		os.Setenv("ODOO_DB", "shop")
		os.Setenv("ODOO_USER", "admin")
		os.Setenv("ODOO_PASSWORD", "secret")
		os.Setenv("PRESTASHOP_BASE_URL", "https://shop.example.com")
		os.Setenv("PRESTASHOP_API_KEY", "KEY123")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://odoo.local:8069", cfg.Odoo.URL)
		assert.Equal(t, "shop", cfg.Odoo.DB)
		assert.Equal(t, "admin", cfg.Odoo.Username)
		assert.Equal(t, "secret", cfg.Odoo.Password)
		assert.True(t, cfg.Odoo.IsConfigured())
		assert.Equal(t, "https://shop.example.com", cfg.PrestaShop.BaseURL)
		assert.Equal(t, "KEY123", cfg.PrestaShop.APIKey)
		assert.True(t, cfg.PrestaShop.IsConfigured())
	})

	t.Run("prefixed variables take precedence over unprefixed", func(t *testing.T) {
		clearEnv()
		os.Setenv("ODOO_URL", "http://bare.local")
		os.Setenv("BRIDGE_ODOO_URL", "http://prefixed.local")
		os.Setenv("ODOO_PASSWORD", "bare")
		os.Setenv("BRIDGE_ODOO_PASSWORD", "prefixed")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://prefixed.local", cfg.Odoo.URL)
		assert.Equal(t, "prefixed", cfg.Odoo.Password)
	})

	t.Run("loads values from environment variables with BRIDGE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_NAME", "bridge-test")
		os.Setenv("BRIDGE_APP_PORT", "9000")
		os.Setenv("BRIDGE_LOG_LEVEL", "debug")
		os.Setenv("BRIDGE_PRESTASHOP_TIMEOUT", "5s")
		os.Setenv("BRIDGE_SYNC_LOCALE", "en")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "bridge-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 5*time.Second, cfg.PrestaShop.Timeout)
		assert.Equal(t, "en", cfg.Sync.Locale)
	})

	t.Run("loads scheduler settings", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_SCHEDULER_ENABLED", "true")
		os.Setenv("BRIDGE_SCHEDULER_CATALOG_INTERVAL", "15m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.Scheduler.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.Scheduler.CatalogInterval)
		assert.Zero(t, cfg.Scheduler.DriftInterval)
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Level")
	})

	t.Run("rejects malformed upstream URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("ODOO_URL", "not a url")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects out of range sampling ratio", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("BRIDGE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestOdooConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      OdooConfig
		expected bool
	}{
		{"all set", OdooConfig{URL: "http://x", DB: "db", Username: "u", Password: "p"}, true},
		{"missing url", OdooConfig{DB: "db", Username: "u", Password: "p"}, false},
		{"missing password", OdooConfig{URL: "http://x", DB: "db", Username: "u"}, false},
		{"empty", OdooConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.IsConfigured())
		})
	}
}

func TestPrestaShopConfig_IsConfigured(t *testing.T) {
	assert.True(t, PrestaShopConfig{BaseURL: "https://shop", APIKey: "k"}.IsConfigured())
	assert.False(t, PrestaShopConfig{BaseURL: "https://shop"}.IsConfigured())
	assert.False(t, PrestaShopConfig{APIKey: "k"}.IsConfigured())
}
