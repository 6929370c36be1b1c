package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newLimiter(t *testing.T, mr *miniredis.Miniredis, limit int) *FixedWindowLimiter {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l, err := NewFixedWindowLimiter(rdb, "test:ratelimit", limit, time.Hour)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	// pin the clock so the test never straddles a window boundary
	fixed := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }
	return l
}

func TestFixedWindowLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 2)
	ctx := context.Background()

	if !l.Allow(ctx, "ip-1") {
		t.Fatal("first request should pass")
	}
	if !l.Allow(ctx, "ip-1") {
		t.Fatal("second request should pass")
	}
	if l.Allow(ctx, "ip-1") {
		t.Fatal("third request should be blocked")
	}
	if !l.Allow(ctx, "ip-2") {
		t.Fatal("other keys keep their own quota")
	}
}

func TestFixedWindowLimiterSetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 5)
	l.Allow(context.Background(), "ip-1")

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one counter key, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestFixedWindowLimiterNewWindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 1)
	ctx := context.Background()

	if !l.Allow(ctx, "ip-1") || l.Allow(ctx, "ip-1") {
		t.Fatal("expected exactly one request in the first window")
	}
	next := l.now().Add(time.Hour)
	l.now = func() time.Time { return next }
	if !l.Allow(ctx, "ip-1") {
		t.Fatal("next window should allow again")
	}
}

func TestFixedWindowLimiterFailClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 1)
	mr.Close()
	if l.Allow(context.Background(), "ip-1") {
		t.Fatal("limiter should fail closed on redis errors")
	}
}

func TestNewFixedWindowLimiterValidates(t *testing.T) {
	if _, err := NewFixedWindowLimiter(nil, "", 1, time.Second); err == nil {
		t.Fatal("expected error for nil client")
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	if _, err := NewFixedWindowLimiter(rdb, "", 0, time.Second); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
