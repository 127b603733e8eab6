package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive process restarts and
// are shared across instances.  The key TTL is the sliding expiry: every
// successful resolve re-arms it.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore wraps an existing Redis client.  The prefix namespaces
// session keys next to the rate-limit and cache keys sharing the instance.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "sess"}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

// Create allocates a token and stores the identity JSON under it with the
// sliding TTL.
func (s *RedisStore) Create(ctx context.Context, id Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(token), body, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve fetches the identity and re-arms the TTL.  A missing key means
// the session expired or was destroyed; that is absence, not an error.
func (s *RedisStore) Resolve(ctx context.Context, token string) (Identity, bool, error) {
	body, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, fmt.Errorf("load session: %w", err)
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return Identity{}, false, fmt.Errorf("decode session: %w", err)
	}
	// Sliding expiry; a failure here leaves the old TTL in place, which is
	// harmless.
	_ = s.rdb.Expire(ctx, s.key(token), s.ttl).Err()
	return id, true, nil
}

// Destroy deletes the key.  DEL on an absent key already succeeds, which
// gives idempotence for free.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
