// Package idempotency shares checkout idempotency keys between instances
// through Redis.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikeRez0/inarashop/internal/adapter/config"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "checkout:idempotency:"

// inFlight marks a reserved key whose checkout has not finished yet.
const inFlight = ""

var _ port.CheckoutKeyStore = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient connects to the configured server and checks it answers.
func NewRedisClient(ctx context.Context, conf *config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Reserve(ctx context.Context, key string, hold time.Duration) (bool, *domain.CheckoutResult, error) {
	// second round covers a key that expired between SETNX and GET
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, keyPrefix+key, inFlight, hold).Result()
		if err != nil {
			return false, nil, err
		}
		if ok {
			return true, nil, nil
		}

		value, err := s.client.Get(ctx, keyPrefix+key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, nil, err
		}
		if value == inFlight {
			return false, nil, nil
		}

		var result domain.CheckoutResult
		if err := json.Unmarshal([]byte(value), &result); err != nil {
			return false, nil, fmt.Errorf("error on stored checkout decode: %w", err)
		}
		return false, &result, nil
	}
	return false, nil, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, result *domain.CheckoutResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
