package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a Redis list of JSON encoded exchanges,
// so memory survives restarts and is shared between server replicas.
type RedisStore struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
	retention int
}

// RedisOpts configures a RedisStore.
type RedisOpts struct {
	KeyPrefix string
	TTL       time.Duration // zero keeps sessions until cleared
	Retention int
}

// NewRedisStore creates a store on top of an existing client.
func NewRedisStore(client redis.Cmdable, opts RedisOpts) *RedisStore {
	retention := opts.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisStore{
		client:    client,
		keyPrefix: opts.KeyPrefix,
		ttl:       opts.TTL,
		retention: retention,
	}
}

// DialRedis opens a client and verifies the connection.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func (s *RedisStore) key(sessionID string) string {
	if s.keyPrefix != "" {
		return fmt.Sprintf("%s:session:%s", s.keyPrefix, sessionID)
	}
	return fmt.Sprintf("session:%s", sessionID)
}

// Get returns the stored exchanges. Redis has no notion of an empty list, so
// an unknown session simply reads as empty.
func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]Exchange, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	history := make([]Exchange, 0, len(raw))
	for _, item := range raw {
		var ex Exchange
		if err := json.Unmarshal([]byte(item), &ex); err != nil {
			return nil, fmt.Errorf("failed to decode exchange in session %s: %w", sessionID, err)
		}
		history = append(history, ex)
	}

	return history, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, ex Exchange) error {
	data, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("failed to encode exchange: %w", err)
	}

	key := s.key(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, int64(-s.retention), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append to session %s: %w", sessionID, err)
	}

	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", sessionID, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
