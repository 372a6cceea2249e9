package fingerprint

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements RemoteStore on a redis set per (learner, module).
// SADD/SMEMBERS give the union-only merge semantics the seen-set needs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RemoteStore backed by the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func seenKey(learnerID, moduleID string) string {
	return fmt.Sprintf("seen:%s:%s", learnerID, moduleID)
}

func (r *RedisStore) Fetch(ctx context.Context, learnerID, moduleID string) ([]string, error) {
	fps, err := r.client.SMembers(ctx, seenKey(learnerID, moduleID)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch seen-set: %w", err)
	}
	return fps, nil
}

func (r *RedisStore) Add(ctx context.Context, learnerID, moduleID string, fps []string) error {
	if len(fps) == 0 {
		return nil
	}
	members := make([]interface{}, len(fps))
	for i, fp := range fps {
		members[i] = fp
	}
	if err := r.client.SAdd(ctx, seenKey(learnerID, moduleID), members...).Err(); err != nil {
		return fmt.Errorf("push seen-set delta: %w", err)
	}
	return nil
}
