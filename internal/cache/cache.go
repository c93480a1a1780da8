// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package cache implements the catalog response cache.
//
// Every outbound catalog call is keyed by a deterministic fingerprint built
// from its endpoint and non-secret parameters (or by an explicit key chosen
// by the caller). The raw JSON body is stored with the time it was fetched
// and is never expired or invalidated by the pipeline: catalog metadata
// changes slowly and a stale page is an accepted tradeoff.
//
// Two tiers are consulted in order:
//
//	memory LRU (per process) -> Store (Badger on disk, Redis, or memory)
//
// Concurrent requests may race to fill the same key. Writes are idempotent
// for a given fingerprint, so last writer wins.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Backend names accepted by OpenStore.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// keyPrefix namespaces response entries inside shared stores.
const keyPrefix = "resp:"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("cache store closed")

// Entry is one cached catalog response.
type Entry struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
}

// Store persists entries by key. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the entry for key; found is false on a miss.
	Get(ctx context.Context, key string) (entry Entry, found bool, err error)

	// Put writes entry under key, replacing any previous value.
	Put(ctx context.Context, key string, entry Entry) error

	// Name identifies the backend in logs and metrics.
	Name() string

	// Close releases the backend's resources.
	Close() error
}

// Options selects and configures a Store backend.
type Options struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MemoryEntries int
}

// OpenStore opens the backend named in opts.
func OpenStore(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendBadger, "":
		return NewBadgerStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
	case BackendMemory:
		return NewMemoryStore(opts.MemoryEntries), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

func encodeEntry(entry Entry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshal cache entry: %w", err)
	}
	return data, nil
}

func decodeEntry(data []byte) (Entry, error) {
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("unmarshal cache entry: %w", err)
	}
	return entry, nil
}
