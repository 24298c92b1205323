package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/lgurt/backend-go/internal/config"
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultRunTTL = 24 * time.Hour

func newRedisClient(cfg config.CacheConfig) (*redis.Client, time.Duration, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, 0, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, 0, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.RunTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultRunTTL
	}

	return client, ttl, nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// scanKeys walks every key under prefix in SCAN batches and hands each
// non-empty batch to fn.
func scanKeys(ctx context.Context, client *redis.Client, prefix string, batchSize int64, fn func(keys []string) error) error {
	var cursor uint64
	pattern := prefix + "*"
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, batchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}

func deleteKeysWithPrefix(ctx context.Context, client *redis.Client, prefix string, batchSize int64) error {
	return scanKeys(ctx, client, prefix, batchSize, func(keys []string) error {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
		return nil
	})
}

// loadRunsWithPrefix decodes the run metadata of every stored result under
// prefix. Keys that expire between SCAN and MGET are skipped.
func loadRunsWithPrefix(ctx context.Context, client *redis.Client, prefix string, batchSize int64) ([]domain.Run, error) {
	var runs []domain.Run
	err := scanKeys(ctx, client, prefix, batchSize, func(keys []string) error {
		values, err := client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis mget failed: %w", err)
		}

		for i, raw := range values {
			payload, ok := raw.(string)
			if !ok {
				continue
			}
			run, err := decodeRun([]byte(payload))
			if err != nil {
				return fmt.Errorf("key %s: %w", keys[i], err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
