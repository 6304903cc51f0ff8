package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for session records.
const redisKeyPrefix = "chat_session:"

// redisStore persists session records as JSON values with a TTL, so idle
// sessions age out without a sweeper. Use this backend when running more
// than one gateway instance.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) key(id string) string {
	return redisKeyPrefix + id
}

// Get returns the record, or nil when the key is missing or expired.
// Reading refreshes the TTL so active sessions stay alive.
func (s *redisStore) Get(ctx context.Context, id string) (*Record, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, err
	}

	_ = s.client.Expire(ctx, s.key(id), s.ttl).Err()

	return &rec, nil
}

func (s *redisStore) Put(ctx context.Context, rec *Record) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(rec.ID), val, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
