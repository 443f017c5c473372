package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions as JSON with a rolling TTL. Carts survive
// process restarts; the checkout in-flight guard is process-local, keyed by
// session ID, and is not stored here.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess := New(id)
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return sess, nil
}

func (r *RedisStore) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		sess, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	sess := New(uuid.New().String())
	if err := r.Save(ctx, sess); err != nil {
		return nil, err
	}

	logger.Debug("Session created", map[string]interface{}{
		"session_id": sess.ID,
	})
	return sess, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), raw, r.ttl).Err(); err != nil {
		logger.Error("Failed to save session", err, map[string]interface{}{
			"session_id": s.ID,
		})
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
