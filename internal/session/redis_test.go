// AngelaMos | 2026
// redis_test.go

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration, sliding bool) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl, sliding), mr
}

func TestCreateResolveDestroy(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, false)
	ctx := context.Background()

	token, err := s.Create(ctx, 42)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	userID, ok, err := s.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if !ok || userID != 42 {
		t.Fatalf("expected user 42, got %d (ok=%v)", userID, ok)
	}

	if err := s.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy session: %v", err)
	}
	if _, ok, err := s.Resolve(ctx, token); err != nil || ok {
		t.Fatalf("expected destroyed session to be gone, ok=%v err=%v", ok, err)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, false)
	ctx := context.Background()

	if err := s.Destroy(ctx, "never-issued"); err != nil {
		t.Fatalf("destroy of unknown token should not error: %v", err)
	}

	token, err := s.Create(ctx, 7)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := s.Destroy(ctx, token); err != nil {
		t.Fatalf("first destroy: %v", err)
	}
	if err := s.Destroy(ctx, token); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
}

func TestResolveAfterExpiry(t *testing.T) {
	s, mr := newTestStore(t, time.Minute, false)
	ctx := context.Background()

	token, err := s.Create(ctx, 1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := s.Resolve(ctx, token); err != nil || ok {
		t.Fatalf("expected expired session, ok=%v err=%v", ok, err)
	}
}

func TestSlidingRenewsTTL(t *testing.T) {
	s, mr := newTestStore(t, time.Minute, true)
	ctx := context.Background()

	token, err := s.Create(ctx, 9)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	mr.FastForward(45 * time.Second)
	if _, ok, err := s.Resolve(ctx, token); err != nil || !ok {
		t.Fatalf("expected live session before expiry, ok=%v err=%v", ok, err)
	}

	// Another 45s would cross the original deadline; the resolve above
	// must have pushed it out.
	mr.FastForward(45 * time.Second)
	if _, ok, err := s.Resolve(ctx, token); err != nil || !ok {
		t.Fatalf("expected sliding session to survive, ok=%v err=%v", ok, err)
	}
}

func TestTokensAreNotStoredVerbatim(t *testing.T) {
	s, mr := newTestStore(t, time.Hour, false)
	ctx := context.Background()

	token, err := s.Create(ctx, 3)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if mr.Exists(keyPrefix + token) {
		t.Fatalf("raw token must not be a redis key")
	}
}
