package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/envsentry/envsentry/pkg/reading"
)

// readingsKey is the Redis list that holds the full reading history in
// append order.
const readingsKey = "envsentry:readings"

// RedisStore implements the reading store on a Redis list. It enables
// multi-instance deployments where the predictor and several dashboard
// replicas share one history.
type RedisStore struct {
	client *redis.Client
	mu     sync.Mutex
}

// NewRedisStore connects to Redis and verifies the connection.
//
// Parameters:
//   - addr: Redis server address (e.g., "localhost:6379")
//   - password: Redis password (empty string for no auth)
//   - db: Redis database number (typically 0)
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if db < 0 {
		return nil, errors.New("redis database number must be >= 0")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Append pushes one reading onto the tail of the history list.
func (r *RedisStore) Append(ctx context.Context, rd reading.Reading) error {
	data, err := json.Marshal(rd)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	if err := r.client.RPush(ctx, readingsKey, data).Err(); err != nil {
		return fmt.Errorf("append reading to redis: %w", err)
	}
	return nil
}

// All returns the full history in append order.
func (r *RedisStore) All(ctx context.Context) ([]reading.Reading, error) {
	raw, err := r.client.LRange(ctx, readingsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read readings from redis: %w", err)
	}

	out := make([]reading.Reading, 0, len(raw))
	for _, item := range raw {
		var rd reading.Reading
		if err := json.Unmarshal([]byte(item), &rd); err != nil {
			return nil, fmt.Errorf("unmarshal reading: %w", err)
		}
		out = append(out, rd)
	}
	return out, nil
}

// Latest returns the tail of the history list.
func (r *RedisStore) Latest(ctx context.Context) (reading.Reading, bool, error) {
	data, err := r.client.LIndex(ctx, readingsKey, -1).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return reading.Reading{}, false, nil
		}
		return reading.Reading{}, false, fmt.Errorf("read latest reading from redis: %w", err)
	}

	var rd reading.Reading
	if err := json.Unmarshal(data, &rd); err != nil {
		return reading.Reading{}, false, fmt.Errorf("unmarshal reading: %w", err)
	}
	return rd, true, nil
}

// Close closes the Redis client connection.
// It is safe to call multiple times (idempotent).
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}

	err := r.client.Close()
	r.client = nil
	if err != nil && err.Error() == "redis: client is closed" {
		return nil
	}

	return err
}

// Ping checks the Redis connection health.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
