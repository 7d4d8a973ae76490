package cache

import (
	"fmt"

	"github.com/erp/syncbridge/internal/domain/shared"
	"github.com/erp/syncbridge/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ClaimStoreFactory creates SKU claim stores based on configuration
type ClaimStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ClaimStoreFactoryOption is a functional option for configuring the factory
type ClaimStoreFactoryOption func(*ClaimStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ClaimStoreFactoryOption {
	return func(f *ClaimStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) ClaimStoreFactoryOption {
	return func(f *ClaimStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewClaimStoreFactory creates a new factory
func NewClaimStoreFactory(cfg config.RedisConfig, opts ...ClaimStoreFactoryOption) *ClaimStoreFactory {
	f := &ClaimStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based claim store
func (f *ClaimStoreFactory) CreateRedisStore() (shared.ClaimStore, error) {
	store, err := NewRedisClaimStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis claim store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory claim store.
// Claims are not shared across process instances.
func (f *ClaimStoreFactory) CreateInMemoryStore() shared.ClaimStore {
	return NewInMemoryClaimStore()
}

// CreateStore returns a Redis store when Redis is configured and reachable.
// Otherwise it falls back to the in-memory store if fallback is allowed.
func (f *ClaimStoreFactory) CreateStore() (shared.ClaimStore, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("Redis not configured, using in-memory SKU claim store")
		return f.CreateInMemoryStore(), nil
	}

	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis SKU claim store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for SKU claims but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory SKU claim store. "+
		"Concurrent syncs of the same SKU from different instances are not prevented.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
