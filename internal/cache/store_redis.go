package cache

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps cache entries in Redis, for deployments where more than
// one service instance should share the same cached view.
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	cmd := s.redisClient.Get(context.Background(), key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return cmd.Val(), true, nil
}

func (s *RedisStore) Set(key, value string) error {
	return s.redisClient.Set(context.Background(), key, value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	return s.redisClient.Del(context.Background(), key).Err()
}

func (s *RedisStore) Keys(prefix string) ([]string, error) {
	cmd := s.redisClient.Keys(context.Background(), prefix+"*")
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.Val(), nil
}
