package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"diagbot/internal/model"
)

// sessionTTL keeps abandoned conversations from accumulating forever.
const sessionTTL = 24 * time.Hour

// RedisStore implements Store on Redis, one JSON value per chat.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Get loads the session for a chat, or nil when none is stored.
func (r *RedisStore) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var s model.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// Put stores the session with a sliding TTL.
func (r *RedisStore) Put(ctx context.Context, chatID int64, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(chatID), data, sessionTTL).Err()
}

// Delete removes the session.
func (r *RedisStore) Delete(ctx context.Context, chatID int64) error {
	return r.client.Del(ctx, sessionKey(chatID)).Err()
}
