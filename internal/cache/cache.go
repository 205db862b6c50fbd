// Package cache stores serialized simulation results keyed by a hash of their
// inputs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/cespare/xxhash/v2"
)

// CacheRepository is a string key/value cache.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a stable cache key for a baseline and scenario spec. Parameter
// maps are encoded by encoding/json, which sorts map keys.
func Key(baseline *dataset.Baseline, spec scenario.Spec) (string, error) {
	payload, err := json.Marshal(struct {
		Baseline *dataset.Baseline `json:"baseline"`
		Spec     scenario.Spec     `json:"spec"`
	}{baseline, spec})
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return constants.DefaultCacheKeyPrefix + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

// MemoryCache is an in-process CacheRepository.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
