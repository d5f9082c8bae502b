package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatch = 100

// Medium is a storage.Medium on top of Redis. Clear and Keys only touch keys
// under the configured namespace so the database can be shared.
type Medium struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

func New(addr, password string, db int, namespace string, logger *zap.Logger) (*Medium, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("successfully connected to Redis", zap.String("addr", addr))

	return NewWithClient(client, namespace, logger), nil
}

func NewWithClient(client *redis.Client, namespace string, logger *zap.Logger) *Medium {
	return &Medium{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

func (m *Medium) Close() error {
	return m.client.Close()
}

func (m *Medium) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := m.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		m.logger.Error("failed to get key",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false, fmt.Errorf("get: %w", err)
	}

	return value, true, nil
}

// Set stores value without expiry
func (m *Medium) Set(ctx context.Context, key, value string) error {
	err := m.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		m.logger.Error("failed to set key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("set: %w", err)
	}

	return nil
}

func (m *Medium) Remove(ctx context.Context, key string) error {
	err := m.client.Del(ctx, key).Err()
	if err != nil {
		m.logger.Error("failed to delete key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (m *Medium) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var cursor uint64

	pattern := escapeGlob(prefix) + "*"
	for {
		batch, next, err := m.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			m.logger.Error("failed to scan keys",
				zap.String("pattern", pattern),
				zap.Error(err),
			)
			return nil, fmt.Errorf("scan: %w", err)
		}

		keys = append(keys, batch...)

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// Clear removes every key under the namespace
func (m *Medium) Clear(ctx context.Context) error {
	keys, err := m.Keys(ctx, m.namespace+"_")
	if err != nil {
		return err
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := m.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			m.logger.Error("failed to clear namespace",
				zap.String("namespace", m.namespace),
				zap.Error(err),
			)
			return fmt.Errorf("clear: %w", err)
		}
	}

	m.logger.Warn("namespace cleared",
		zap.String("namespace", m.namespace),
		zap.Int("count", len(keys)),
	)

	return nil
}

// IncrementWithExpiry increments counter and refreshes its TTL
func (m *Medium) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := m.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	_, err := pipe.Exec(ctx)
	if err != nil {
		m.logger.Error("failed to increment with expiry",
			zap.String("key", key),
			zap.Error(err),
		)
		return 0, fmt.Errorf("increment with expiry: %w", err)
	}

	return incrCmd.Val(), nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
