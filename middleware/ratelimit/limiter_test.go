package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

func setupLimiter(t *testing.T) *Limiter {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	t.Cleanup(func() { client.Close() })

	return NewLimiter(client, "test:ratelimit:")
}

func TestLimiter_AllowWithinLimit(t *testing.T) {
	l := setupLimiter(t)
	ctx := context.Background()
	key := "allow-" + time.Now().Format("150405.000000")
	defer l.Reset(ctx, key)

	for i := 0; i < 5; i++ {
		result, err := l.Allow(ctx, key, 5, time.Minute)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if result.Remaining != 5-i-1 {
			t.Errorf("request %d remaining = %d, expected %d", i, result.Remaining, 5-i-1)
		}
	}

	result, err := l.Allow(ctx, key, 5, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if result.Allowed {
		t.Error("sixth request should be rejected")
	}
	if result.ResetAt.Before(time.Now()) {
		t.Errorf("ResetAt = %v, expected a future time", result.ResetAt)
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	l := setupLimiter(t)
	ctx := context.Background()
	key := "slide-" + time.Now().Format("150405.000000")
	defer l.Reset(ctx, key)

	if _, err := l.Allow(ctx, key, 1, 200*time.Millisecond); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}

	blocked, err := l.Allow(ctx, key, 1, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if blocked.Allowed {
		t.Fatal("second request inside the window should be rejected")
	}

	time.Sleep(250 * time.Millisecond)

	allowed, err := l.Allow(ctx, key, 1, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !allowed.Allowed {
		t.Error("request after the window slid should be allowed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := setupLimiter(t)
	ctx := context.Background()
	key := "reset-" + time.Now().Format("150405.000000")

	if _, err := l.Allow(ctx, key, 1, time.Minute); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if err := l.Reset(ctx, key); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	result, err := l.Allow(ctx, key, 1, time.Minute)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !result.Allowed {
		t.Error("request after Reset() should be allowed")
	}
	l.Reset(ctx, key)
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(nil, "test:")
	if l.keyPrefix != "test:" {
		t.Errorf("keyPrefix = %q, expected %q", l.keyPrefix, "test:")
	}
}
