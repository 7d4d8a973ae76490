package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/syncbridge/internal/domain/shared"
	"github.com/google/uuid"
)

// claim represents a held key with its owner token and expiration
type claim struct {
	token     string
	expiresAt time.Time
}

// InMemoryClaimStore implements ClaimStore using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryClaimStore struct {
	mu        sync.Mutex
	claims    map[string]claim
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryClaimStore creates a new in-memory claim store
// It starts a background goroutine to clean up expired claims
func NewInMemoryClaimStore() *InMemoryClaimStore {
	store := &InMemoryClaimStore{
		claims:   make(map[string]claim),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Claim takes the key for ttl unless an unexpired claim already holds it
func (s *InMemoryClaimStore) Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if c, exists := s.claims[key]; exists && now.Before(c.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	s.claims[key] = claim{
		token:     token,
		expiresAt: now.Add(ttl),
	}
	return token, true, nil
}

// Release drops the claim when token still owns it
func (s *InMemoryClaimStore) Release(ctx context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, exists := s.claims[key]; exists && c.token == token {
		delete(s.claims, key)
	}
	return nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemoryClaimStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryClaimStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryClaimStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, c := range s.claims {
		if now.After(c.expiresAt) {
			delete(s.claims, key)
		}
	}
}

// Size returns the number of claims in the store (for testing/monitoring)
func (s *InMemoryClaimStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.claims)
}

// Ensure InMemoryClaimStore implements ClaimStore
var _ shared.ClaimStore = (*InMemoryClaimStore)(nil)
