package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist tracks revoked token ids until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist stores revoked token ids in Redis with a TTL matching
// the token's remaining lifetime, so entries expire on their own.
type RedisDenylist struct {
	client *redis.Client
	prefix string
}

// NewRedisDenylist creates a Redis-backed denylist.
func NewRedisDenylist(client *redis.Client, prefix string) *RedisDenylist {
	return &RedisDenylist{client: client, prefix: prefix}
}

// Revoke marks a token id as revoked for ttl.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	if err := d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist set error: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, d.prefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("denylist get error: %w", err)
	}
	return true, nil
}

// MemoryDenylist is an in-process fallback used when Redis is not
// configured, and in tests.
type MemoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryDenylist creates an in-memory denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

// Revoke marks a token id as revoked for ttl.
func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether a token id has been revoked. Expired
// entries are dropped lazily.
func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.RLock()
	until, found := d.revoked[tokenID]
	d.mu.RUnlock()

	if !found {
		return false, nil
	}
	if time.Now().After(until) {
		d.mu.Lock()
		delete(d.revoked, tokenID)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
