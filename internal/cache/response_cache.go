// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lumiere/internal/metrics"
)

// ResponseCache fronts a Store with a memory LRU. It is created once per
// process and shared by every pipeline run.
//
// Store failures never fail a lookup: a read error is a miss and a write
// error is logged, because the catalog remains the source of truth.
type ResponseCache struct {
	store  Store
	front  *LRUCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewResponseCache wraps store with a memory tier of frontEntries entries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResponseCache(store Store, frontEntries int, logger zerolog.Logger) *ResponseCache {
	return &ResponseCache{
		store:  store,
		front:  NewLRUCache(frontEntries),
		logger: logger.With().Str("component", "response_cache").Str("backend", store.Name()).Logger(),
		now:    time.Now,
	}
}

// Get returns the cached payload for key.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if entry, ok := c.front.Get(key); ok {
		metrics.RecordCacheLookup("memory", true, nil)
		return entry.Payload, true
	}
	metrics.RecordCacheLookup("memory", false, nil)

	entry, found, err := c.store.Get(ctx, key)
	metrics.RecordCacheLookup("store", found, err)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		return nil, false
	}
	if !found {
		return nil, false
	}

	c.front.Add(key, entry)
	return entry.Payload, true
}

// Put stores payload under key in both tiers. payload must be valid JSON.
func (c *ResponseCache) Put(ctx context.Context, key string, payload []byte) {
	entry := Entry{Payload: append([]byte(nil), payload...), StoredAt: c.now().UTC()}
	c.front.Add(key, entry)

	err := c.store.Put(ctx, key, entry)
	metrics.RecordCacheWrite(c.store.Name(), err)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// GetOrFetch returns the cached payload for key, calling fetch and caching
// its result on a miss. Fetch errors are returned and nothing is cached.
func (c *ResponseCache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) (payload []byte, hit bool, err error) {
	if payload, ok := c.Get(ctx, key); ok {
		return payload, true, nil
	}

	payload, err = fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	c.Put(ctx, key, payload)
	return payload, false, nil
}

// Store returns the backing store.
func (c *ResponseCache) Store() Store {
	return c.store
}

// Stats reports memory-tier counters.
func (c *ResponseCache) Stats() (hits, misses int64, size int) {
	return c.front.Stats()
}

// Close closes the backing store.
func (c *ResponseCache) Close() error {
	return c.store.Close()
}
