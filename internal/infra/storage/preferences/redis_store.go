package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "prefs"

// RedisStore хранилище предпочтений в Redis, ключ prefs:<owner>:<key>
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(owner, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, owner, key)
}

func (s *RedisStore) Get(ctx context.Context, owner, key string) (string, error) {
	if owner == "" || key == "" {
		return "", ErrInvalidKey
	}

	value, err := s.client.Get(ctx, redisKey(owner, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get: %v", ErrRedis, err)
	}

	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, owner, key, value string) error {
	if owner == "" || key == "" {
		return ErrInvalidKey
	}

	if err := s.client.Set(ctx, redisKey(owner, key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrRedis, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, owner, key string) error {
	if owner == "" || key == "" {
		return ErrInvalidKey
	}

	if err := s.client.Del(ctx, redisKey(owner, key)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrRedis, err)
	}
	return nil
}
