package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// CacheModule owns the shared Redis connection and hands the cache to
// the modules that read through it.
type CacheModule struct {
	cache     *Cache
	client    *redis.Client
	redisAddr string
	prefix    string
	ttl       time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*CacheModule)(nil)
var _ mono.HealthCheckableModule = (*CacheModule)(nil)

// NewModule creates a new CacheModule reading its address from the
// environment.
func NewModule() *CacheModule {
	return &CacheModule{
		redisAddr: os.Getenv("TASKBOARD_REDIS_ADDR"),
		prefix:    "taskboard:",
		ttl:       5 * time.Minute,
	}
}

// Name returns the module name.
func (m *CacheModule) Name() string {
	return "cache"
}

// Enabled reports whether a Redis address was configured.
func (m *CacheModule) Enabled() bool {
	return m.redisAddr != ""
}

// Cache returns the cache instance, nil when Redis is not configured.
func (m *CacheModule) Cache() *Cache {
	return m.cache
}

// Start connects to Redis when configured. Without an address the
// module stays up and dependents fall back to uncached reads.
func (m *CacheModule) Start(ctx context.Context) error {
	if m.redisAddr == "" {
		log.Println("[cache] Disabled (TASKBOARD_REDIS_ADDR not set), reads go straight to the database")
		return nil
	}

	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.redisAddr, err)
	}

	m.cache = New(m.client, m.prefix, m.ttl)
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.redisAddr, m.prefix, m.ttl)
	return nil
}

// Stop closes the Redis connection.
func (m *CacheModule) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health reports the Redis connection state.
func (m *CacheModule) Health(ctx context.Context) mono.HealthStatus {
	if m.redisAddr == "" {
		return mono.HealthStatus{
			Healthy: true,
			Message: "disabled",
		}
	}
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}
	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.redisAddr,
		},
	}
}
