package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps user sessions in Redis so they survive a process
// restart. Expiry is delegated to the key TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "usersession:",
	}
}

func (r *RedisStore) key(sid string) string {
	return r.prefix + sid
}

func (r *RedisStore) Create(ctx context.Context, s UserSession) error {
	if s.Sid == "" {
		return fmt.Errorf("session: missing sid")
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(s.Sid), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, sid string) (*UserSession, error) {
	val, err := r.client.Get(ctx, r.key(sid)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var s UserSession
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sid string) error {
	return r.client.Del(ctx, r.key(sid)).Err()
}
