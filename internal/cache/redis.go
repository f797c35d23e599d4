// Package cache оборачивает подключение к redis, которое сервис использует
// как TTL key-value хранилище для реестра сессий и черного списка токенов.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olehsv/check-service/internal/config"
)

// Cache клиент key-value хранилища.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get возвращает значение ключа. Второй результат false, если ключа нет.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// GetDel атомарно читает и удаляет ключ. Второй результат false, если ключа нет.
func (c *Cache) GetDel(ctx context.Context, key string) (string, bool, error) {
	const op = "cache.GetDel"
	val, err := c.Db.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set записывает значение с временем жизни.
func (c *Cache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	const op = "cache.Set"
	if err := c.Db.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Keys возвращает ключи по шаблону.
func (c *Cache) Keys(ctx context.Context, pattern string) ([]string, error) {
	const op = "cache.Keys"
	keys, err := c.Db.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return keys, nil
}

// Invalidate удаляет ключ.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	const op = "cache.Invalidate"
	if err := c.Db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
