package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"pomodoro/internal/core/timekeeper"
)

const redisKeyPrefix = "pomodoro:state:"

// RedisStore keeps one session per profile in Redis.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a store for the given profile. A zero ttl keeps
// the session forever.
func NewRedisStore(client *redis.Client, profile string, ttl time.Duration) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, key: redisKeyPrefix + profile, ttl: ttl}
}

// Save stores the session.
func (s *RedisStore) Save(ctx context.Context, snapshot timekeeper.Snapshot) error {
	data, err := json.Marshal(RecordFromSnapshot(snapshot))
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save session")
	}
	return nil
}

// Load fetches the session.
func (s *RedisStore) Load(ctx context.Context) (timekeeper.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return timekeeper.Snapshot{}, timekeeper.ErrNoState
		}
		return timekeeper.Snapshot{}, errors.Wrap(err, "failed to get session")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "failed to unmarshal session")
	}
	return record.Snapshot(), nil
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
