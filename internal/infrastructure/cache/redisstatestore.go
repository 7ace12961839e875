package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/infrastructure/auth"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
)

// DefaultStatePrefix namespaces OAuth state keys.
const DefaultStatePrefix = "oauth:state:"

// RedisStateStore keeps opaque OAuth states in Redis for single use.
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	if prefix == "" {
		prefix = DefaultStatePrefix
	}
	return &RedisStateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Issue generates a random state and stores info under it with the TTL.
func (s *RedisStateStore) Issue(ctx context.Context, info integration.StateInfo) (string, error) {
	state, err := auth.GenerateState()
	if err != nil {
		return "", err
	}
	if info.CreatedAt.IsZero() {
		info.CreatedAt = biztime.NowUTC()
	}

	data, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state info: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(state), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store state in redis: %w", err)
	}
	return state, nil
}

// Verify consumes the state with GETDEL, so a replay finds nothing.
func (s *RedisStateStore) Verify(ctx context.Context, state string) (*integration.StateInfo, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	data, err := s.client.GetDel(ctx, s.buildKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("state not found or expired")
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var info integration.StateInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return &info, nil
}

func (s *RedisStateStore) buildKey(state string) string {
	return s.prefix + state
}
