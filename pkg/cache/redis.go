// Пакет cache предоставляет обёртку над Redis для кэширования ответов API
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss возвращается, когда запрошенный ключ отсутствует в Redis.
// Позволяет отличить кэш-промах от прочих ошибок Redis.
var ErrCacheMiss = errors.New("cache miss")

// RedisClient оборачивает *redis.Client и сводит работу с кэшем
// к трем операциям: Set, Get и Invalidate.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient создаёт новый RedisClient с заданными опциями подключения
func NewRedisClient(opts *redis.Options) *RedisClient {
	return &RedisClient{client: redis.NewClient(opts)}
}

// Set сохраняет значение value под ключом key с временем жизни expiration
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get читает значение по ключу key.
// Отсутствующий ключ (redis.Nil) транслируется в ErrCacheMiss,
// прочие ошибки Redis возвращаются как есть.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Invalidate удаляет ключ key из кэша после изменения данных
func (r *RedisClient) Invalidate(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
