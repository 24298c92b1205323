package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/lgurt/backend-go/internal/config"
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	runKeyPrefix     = "run:"
	runScanBatchSize = 100

	// DefaultListLimit caps List when the caller passes no limit.
	DefaultListLimit = 50
)

// ErrMissingRunID is returned by Set for a result without a run id.
var ErrMissingRunID = errors.New("run result has no run id")

// RunCache stores run results by run id so they can be replayed and verified.
type RunCache interface {
	Get(ctx context.Context, runID string) (*domain.RunResult, bool, error)
	Set(ctx context.Context, result *domain.RunResult) error
	Delete(ctx context.Context, runID string) error
	InvalidateAll(ctx context.Context) error
	// List returns the metadata of stored runs, newest first, at most limit.
	List(ctx context.Context, limit int) ([]domain.Run, error)
}

type redisRunCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRunCache struct{}

// memoryRunCache keeps encoded results in process memory.
type memoryRunCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewRunCache returns a Redis-backed cache, or a noop cache when caching is disabled.
func NewRunCache(cfg config.CacheConfig) (RunCache, error) {
	if !cfg.Enabled {
		return &noopRunCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRunCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopRunCache() RunCache {
	return &noopRunCache{}
}

// NewMemoryRunCache returns a cache that lives as long as the process.
func NewMemoryRunCache() RunCache {
	return &memoryRunCache{entries: make(map[string][]byte)}
}

func (c *redisRunCache) Get(ctx context.Context, runID string) (*domain.RunResult, bool, error) {
	payload, err := c.client.Get(ctx, buildRunKey(runID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	result, err := decodeRunResult(payload)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

func (c *redisRunCache) Set(ctx context.Context, result *domain.RunResult) error {
	key, payload, err := encodeRunResult(result)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRunCache) Delete(ctx context.Context, runID string) error {
	return c.client.Del(ctx, buildRunKey(runID)).Err()
}

func (c *redisRunCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, runKeyPrefix, runScanBatchSize)
}

func (c *redisRunCache) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := loadRunsWithPrefix(ctx, c.client, runKeyPrefix, runScanBatchSize)
	if err != nil {
		return nil, err
	}
	return newestRuns(runs, limit), nil
}

func (n *noopRunCache) Get(ctx context.Context, runID string) (*domain.RunResult, bool, error) {
	return nil, false, nil
}

func (n *noopRunCache) Set(ctx context.Context, result *domain.RunResult) error {
	return nil
}

func (n *noopRunCache) Delete(ctx context.Context, runID string) error {
	return nil
}

func (n *noopRunCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopRunCache) List(ctx context.Context, limit int) ([]domain.Run, error) {
	return []domain.Run{}, nil
}

func (m *memoryRunCache) Get(ctx context.Context, runID string) (*domain.RunResult, bool, error) {
	m.mu.RLock()
	payload, ok := m.entries[buildRunKey(runID)]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	result, err := decodeRunResult(payload)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

func (m *memoryRunCache) Set(ctx context.Context, result *domain.RunResult) error {
	key, payload, err := encodeRunResult(result)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = payload
	m.mu.Unlock()
	return nil
}

func (m *memoryRunCache) Delete(ctx context.Context, runID string) error {
	m.mu.Lock()
	delete(m.entries, buildRunKey(runID))
	m.mu.Unlock()
	return nil
}

func (m *memoryRunCache) InvalidateAll(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}

func (m *memoryRunCache) List(ctx context.Context, limit int) ([]domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]domain.Run, 0, len(m.entries))
	for _, payload := range m.entries {
		run, err := decodeRun(payload)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return newestRuns(runs, limit), nil
}

// newestRuns sorts by creation time descending, ties by id, and keeps at
// most limit entries.
func newestRuns(runs []domain.Run, limit int) []domain.Run {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if runs == nil {
		runs = []domain.Run{}
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs
}

func buildRunKey(runID string) string {
	return runKeyPrefix + strings.TrimSpace(runID)
}

func encodeRunResult(result *domain.RunResult) (string, []byte, error) {
	if result == nil || strings.TrimSpace(result.Run.ID) == "" {
		return "", nil, ErrMissingRunID
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", nil, fmt.Errorf("encode run result cache: %w", err)
	}
	return buildRunKey(result.Run.ID), payload, nil
}

func decodeRunResult(payload []byte) (*domain.RunResult, error) {
	var result domain.RunResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode run result cache: %w", err)
	}
	return &result, nil
}

// decodeRun reads only the run metadata of a stored result.
func decodeRun(payload []byte) (domain.Run, error) {
	var stored struct {
		Run domain.Run `json:"run"`
	}
	if err := json.Unmarshal(payload, &stored); err != nil {
		return domain.Run{}, fmt.Errorf("decode run metadata: %w", err)
	}
	return stored.Run, nil
}
