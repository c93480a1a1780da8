// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package cache

import (
	"context"
	"sync/atomic"
)

// MemoryStore is a process-local Store backed by an LRUCache. Nothing
// survives a restart; it is meant for tests and one-shot CLI runs.
type MemoryStore struct {
	lru    *LRUCache
	closed atomic.Bool
}

// NewMemoryStore creates a memory store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{lru: NewLRUCache(capacity)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	if s.closed.Load() {
		return Entry{}, false, ErrClosed
	}
	entry, ok := s.lru.Get(key)
	return entry, ok, nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, key string, entry Entry) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.lru.Add(key, entry)
	return nil
}

// Name implements Store.
func (s *MemoryStore) Name() string { return BackendMemory }

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}

var _ Store = (*MemoryStore)(nil)
