// Package publish tracks which canvas version a published share link
// resolves to. The versioning engine notifies this store after a
// version activation commits; publish links point at a version group,
// not at a specific row, so the mapping here is the only place a link
// learns about its current live target.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the publish-link collaborator seen by the services. A nil
// Store is treated as "publishing disabled".
type Store interface {
	SetActiveTarget(ctx context.Context, groupID, canvasID string) error
	GetActiveTarget(ctx context.Context, groupID string) (string, error)
	RemoveGroup(ctx context.Context, groupID string) error
}

// RedisStore implements Store on top of Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed publish-link store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: "publish:group:"}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "publish:group:"}
}

func (s *RedisStore) key(groupID string) string {
	return s.prefix + groupID
}

// SetActiveTarget records the canvas row a published group currently
// resolves to.
func (s *RedisStore) SetActiveTarget(ctx context.Context, groupID, canvasID string) error {
	if err := s.client.Set(ctx, s.key(groupID), canvasID, 0).Err(); err != nil {
		return fmt.Errorf("set active target: %w", err)
	}
	return nil
}

// GetActiveTarget returns the canvas row a published group resolves
// to, or redis.Nil if the group has never been published or activated.
func (s *RedisStore) GetActiveTarget(ctx context.Context, groupID string) (string, error) {
	canvasID, err := s.client.Get(ctx, s.key(groupID)).Result()
	if err != nil {
		return "", fmt.Errorf("get active target: %w", err)
	}
	return canvasID, nil
}

// RemoveGroup drops the mapping for a deleted version group.
func (s *RedisStore) RemoveGroup(ctx context.Context, groupID string) error {
	if err := s.client.Del(ctx, s.key(groupID)).Err(); err != nil {
		return fmt.Errorf("remove group: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
