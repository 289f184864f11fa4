package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

// setupTestCache skips when no local Redis is reachable.
func setupTestCache(t *testing.T, prefix string) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	cleanupKeys(ctx, client, prefix+"*")
	t.Cleanup(func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	})

	return New(client, prefix, 5*time.Minute)
}

func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
}

type summaryFixture struct {
	UserID    string `json:"user_id"`
	Completed int    `json:"completed"`
}

func TestCache_SetGet(t *testing.T) {
	c := setupTestCache(t, "test:setget:")
	ctx := context.Background()

	in := summaryFixture{UserID: "u1", Completed: 7}
	if err := c.Set(ctx, "summary:u1", in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out summaryFixture
	hit, err := c.Get(ctx, "summary:u1", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() should hit after Set()")
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestCache_Miss(t *testing.T) {
	c := setupTestCache(t, "test:miss:")

	var out summaryFixture
	hit, err := c.Get(context.Background(), "nope", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() on an absent key should miss")
	}
}

func TestCache_Delete(t *testing.T) {
	c := setupTestCache(t, "test:del:")
	ctx := context.Background()

	if err := c.Set(ctx, "k", summaryFixture{UserID: "u1"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var out summaryFixture
	hit, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("deleted key should miss")
	}
}

func TestCache_DeletePattern(t *testing.T) {
	c := setupTestCache(t, "test:pat:")
	ctx := context.Background()

	for _, key := range []string{"summary:u1", "summary:u2", "trend:u1"} {
		if err := c.Set(ctx, key, summaryFixture{UserID: key}); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	if err := c.DeletePattern(ctx, "summary:*"); err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}

	var out summaryFixture
	if hit, _ := c.Get(ctx, "summary:u1", &out); hit {
		t.Error("summary:u1 should be gone")
	}
	if hit, _ := c.Get(ctx, "summary:u2", &out); hit {
		t.Error("summary:u2 should be gone")
	}
	if hit, _ := c.Get(ctx, "trend:u1", &out); !hit {
		t.Error("trend:u1 should survive a summary:* purge")
	}
}

func TestCache_Stats(t *testing.T) {
	c := setupTestCache(t, "test:stats:")
	ctx := context.Background()
	c.ResetStats()

	c.Set(ctx, "k", summaryFixture{UserID: "u1"})

	var out summaryFixture
	c.Get(ctx, "k", &out)
	c.Get(ctx, "absent", &out)

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("hit rate = %v, want 50", stats.HitRate)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := setupTestCache(t, "test:ttl:")
	ctx := context.Background()

	if err := c.SetWithTTL(ctx, "blink", summaryFixture{UserID: "u1"}, 50*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	var out summaryFixture
	hit, err := c.Get(ctx, "blink", &out)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("key should have expired")
	}
}
