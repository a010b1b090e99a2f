package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Abandoned sessions expire on their own; advancing a session refreshes it.
const ttl = 24 * time.Hour

// RedisStore persists session state as JSON in Redis so an in-progress fill
// survives bot restarts.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, chatID int64) (State, bool, error) {
	v, err := r.client.Get(ctx, fillKey(chatID)).Result()
	if err == redis.Nil {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("get session: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(v), &state); err != nil {
		return State{}, false, fmt.Errorf("decode session: %w", err)
	}
	return state, true, nil
}

func (r *RedisStore) Set(ctx context.Context, chatID int64, state State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, fillKey(chatID), b, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, fillKey(chatID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func fillKey(chatID int64) string {
	return fmt.Sprintf("fill:%d", chatID)
}
