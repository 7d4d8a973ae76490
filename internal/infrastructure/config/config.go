package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (BRIDGE_ODOO_URL, ...)
const EnvPrefix = "BRIDGE"

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Odoo       OdooConfig
	PrestaShop PrestaShopConfig
	Redis      RedisConfig
	Sync       SyncConfig
	Scheduler  SchedulerConfig
	Telemetry  TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Env     string
	Port    string `validate:"required,numeric"`
	Version string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64 `validate:"gt=0"`
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// OdooConfig holds the ERP connection settings.
// Empty values are allowed; ERP operations then report the ERP as not configured.
type OdooConfig struct {
	URL      string `validate:"omitempty,url"`
	DB       string
	Username string
	Password string
	Timeout  time.Duration
}

// IsConfigured reports whether every ERP credential is present
func (c OdooConfig) IsConfigured() bool {
	return c.URL != "" && c.DB != "" && c.Username != "" && c.Password != ""
}

// PrestaShopConfig holds the storefront connection settings.
// Empty values are allowed; storefront operations then report the storefront as not configured.
type PrestaShopConfig struct {
	BaseURL           string `validate:"omitempty,url"`
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"gte=0"`
}

// IsConfigured reports whether the storefront base URL and key are present
func (c PrestaShopConfig) IsConfigured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

// RedisConfig holds Redis connection settings.
// An empty host selects the in-memory SKU claim store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SyncConfig holds reconciliation settings
type SyncConfig struct {
	ClaimsEnabled     bool
	ClaimTTL          time.Duration `validate:"gt=0"`
	SingleItemTimeout time.Duration `validate:"gt=0"`
	Locale            string        `validate:"required"`
}

// SchedulerConfig holds the periodic reconciliation settings.
// A zero interval leaves that pass to the HTTP endpoints.
type SchedulerConfig struct {
	Enabled         bool
	CatalogInterval time.Duration `validate:"gte=0"`
	DriftInterval   time.Duration `validate:"gte=0"`
	JobTimeout      time.Duration `validate:"gt=0"`
	RunOnStart      bool
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 `validate:"gte=0,lte=1"`
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsInterval   time.Duration
}

// bareEnvBindings maps config keys to unprefixed variable names accepted for compatibility
var bareEnvBindings = map[string]string{
	"odoo.url":            "ODOO_URL",
	"odoo.db":             "ODOO_DB",
	"odoo.username":       "ODOO_USER",
	"odoo.password":       "ODOO_PASSWORD",
	"prestashop.base_url": "PRESTASHOP_BASE_URL",
	"prestashop.api_key":  "PRESTASHOP_API_KEY",
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BRIDGE_ prefix (e.g., BRIDGE_ODOO_PASSWORD)
// 2. Unprefixed upstream credentials (ODOO_URL, PRESTASHOP_API_KEY, ...)
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, bare := range bareEnvBindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, bare); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetDefault("sync.claims_enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Odoo: OdooConfig{
			URL:      v.GetString("odoo.url"),
			DB:       v.GetString("odoo.db"),
			Username: v.GetString("odoo.username"),
			Password: v.GetString("odoo.password"),
			Timeout:  v.GetDuration("odoo.timeout"),
		},
		PrestaShop: PrestaShopConfig{
			BaseURL:           v.GetString("prestashop.base_url"),
			APIKey:            v.GetString("prestashop.api_key"),
			Timeout:           v.GetDuration("prestashop.timeout"),
			RequestsPerSecond: v.GetFloat64("prestashop.requests_per_second"),
			Burst:             v.GetInt("prestashop.burst"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Sync: SyncConfig{
			ClaimsEnabled:     v.GetBool("sync.claims_enabled"),
			ClaimTTL:          v.GetDuration("sync.claim_ttl"),
			SingleItemTimeout: v.GetDuration("sync.single_item_timeout"),
			Locale:            v.GetString("sync.locale"),
		},
		Scheduler: SchedulerConfig{
			Enabled:         v.GetBool("scheduler.enabled"),
			CatalogInterval: v.GetDuration("scheduler.catalog_interval"),
			DriftInterval:   v.GetDuration("scheduler.drift_interval"),
			JobTimeout:      v.GetDuration("scheduler.job_timeout"),
			RunOnStart:      v.GetBool("scheduler.run_on_start"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "syncbridge"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	// Bulk syncs walk the whole catalog
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 10 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Accept-Language", "X-Request-ID"}
	}
	if cfg.Odoo.Timeout == 0 {
		cfg.Odoo.Timeout = 30 * time.Second
	}
	if cfg.PrestaShop.Timeout == 0 {
		cfg.PrestaShop.Timeout = 20 * time.Second
	}
	if cfg.PrestaShop.RequestsPerSecond == 0 {
		cfg.PrestaShop.RequestsPerSecond = 10
	}
	if cfg.PrestaShop.Burst == 0 {
		cfg.PrestaShop.Burst = 5
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Sync.ClaimTTL == 0 {
		cfg.Sync.ClaimTTL = 5 * time.Minute
	}
	if cfg.Sync.SingleItemTimeout == 0 {
		cfg.Sync.SingleItemTimeout = 40 * time.Second
	}
	if cfg.Sync.Locale == "" {
		cfg.Sync.Locale = "es"
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 30 * time.Minute
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return fmt.Errorf("invalid configuration: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.Enabled && c.Telemetry.Insecure {
			return fmt.Errorf("telemetry.insecure must be false in production")
		}
	}

	return nil
}
