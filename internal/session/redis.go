// AngelaMos | 2026
// redis.go

package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelamos/bookclub-api/internal/core"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis under a sha256 of the client token,
// with the configured TTL. With sliding enabled, every successful Resolve
// renews the expiry.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	sliding bool
}

func NewRedisStore(
	client *redis.Client,
	ttl time.Duration,
	sliding bool,
) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		sliding: sliding,
	}
}

func (s *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	token, err := core.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	key := keyPrefix + core.HashToken(token)
	value := strconv.FormatInt(userID, 10)

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (s *RedisStore) Resolve(
	ctx context.Context,
	token string,
) (int64, bool, error) {
	key := keyPrefix + core.HashToken(token)

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse session user id: %w", err)
	}

	if s.sliding {
		//nolint:errcheck // best-effort TTL renewal
		_ = s.client.Expire(ctx, key, s.ttl).Err()
	}

	return userID, true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	key := keyPrefix + core.HashToken(token)

	if err := s.client.Del(ctx, key).Err(); err != nil &&
		!errors.Is(err, redis.Nil) {
		return fmt.Errorf("destroy session: %w", err)
	}

	return nil
}

var _ Store = (*RedisStore)(nil)
