package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"whatyaneed_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisStore - сессии в Redis, снимок хранится JSON-строкой с TTL ключа
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStoreFromURL подключается к Redis по URL и проверяет соединение
func NewRedisStoreFromURL(redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis session store connected", "addr", opts.Addr)
	return NewRedisStore(client, prefix), nil
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*User, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) Bind(ctx context.Context, id string, user User, ttl time.Duration) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, s.key(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
