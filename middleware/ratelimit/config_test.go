package ratelimit

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected RedisAddr 'localhost:6379', got %q", cfg.RedisAddr)
	}
	if cfg.DefaultLimit != 300 {
		t.Errorf("expected DefaultLimit 300, got %d", cfg.DefaultLimit)
	}
	if cfg.DefaultWindow != time.Minute {
		t.Errorf("expected DefaultWindow 1m, got %v", cfg.DefaultWindow)
	}
	if cfg.KeyPrefix != "taskboard:ratelimit:" {
		t.Errorf("expected KeyPrefix 'taskboard:ratelimit:', got %q", cfg.KeyPrefix)
	}
	if cfg.FallbackClientID != "anonymous" {
		t.Errorf("expected FallbackClientID 'anonymous', got %q", cfg.FallbackClientID)
	}

	// The auth surface ships with tight limits out of the box.
	login, ok := cfg.ServiceLimits["login"]
	if !ok || login.Limit != 10 || login.Window != time.Minute {
		t.Errorf("expected login limit 10/min, got %+v (present=%v)", login, ok)
	}
	register, ok := cfg.ServiceLimits["register"]
	if !ok || register.Limit != 5 {
		t.Errorf("expected register limit 5/min, got %+v (present=%v)", register, ok)
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()

	WithRedisAddr("redis.example.com:6380")(&cfg)
	WithRedisPassword("secret123")(&cfg)
	WithRedisDB(5)(&cfg)
	WithDefaultLimit(50, 30*time.Second)(&cfg)
	WithServiceLimit("list-tasks", 1000, time.Minute)(&cfg)
	WithKeyPrefix("custom:")(&cfg)
	WithClientIDHeader("X-Device-ID")(&cfg)

	if cfg.RedisAddr != "redis.example.com:6380" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "secret123" {
		t.Errorf("RedisPassword = %q", cfg.RedisPassword)
	}
	if cfg.RedisDB != 5 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.DefaultLimit != 50 || cfg.DefaultWindow != 30*time.Second {
		t.Errorf("default limit = %d/%v", cfg.DefaultLimit, cfg.DefaultWindow)
	}
	if cfg.ServiceLimits["list-tasks"].Limit != 1000 {
		t.Errorf("list-tasks limit = %+v", cfg.ServiceLimits["list-tasks"])
	}
	if cfg.KeyPrefix != "custom:" {
		t.Errorf("KeyPrefix = %q", cfg.KeyPrefix)
	}
	if cfg.ClientIDHeader != "X-Device-ID" {
		t.Errorf("ClientIDHeader = %q", cfg.ClientIDHeader)
	}
}

func TestLimitForService(t *testing.T) {
	m := New(WithServiceLimit("login", 3, 10*time.Second))

	limit, window := m.limitForService("login")
	if limit != 3 || window != 10*time.Second {
		t.Errorf("login limit = %d/%v, expected 3/10s", limit, window)
	}

	limit, window = m.limitForService("something-else")
	if limit != m.config.DefaultLimit || window != m.config.DefaultWindow {
		t.Errorf("unknown service limit = %d/%v, expected defaults", limit, window)
	}
}
