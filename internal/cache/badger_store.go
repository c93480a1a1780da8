// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

// DefaultGCRatio is the value-log discard ratio used by RunGC.
const DefaultGCRatio = 0.5

// BadgerStore is the file-backed Store. An empty dir opens an in-memory
// database, which tests use.
type BadgerStore struct {
	db       *badger.DB
	inMemory bool
	closed   atomic.Bool
}

// NewBadgerStore opens (or creates) a Badger database in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	opts.Logger = nil
	// Responses are small JSON documents; the 1GB default value log is oversized.
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger response cache: %w", err)
	}
	return &BadgerStore{db: db, inMemory: dir == ""}, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, key string) (Entry, bool, error) {
	if s.closed.Load() {
		return Entry{}, false, ErrClosed
	}
	var entry Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeEntry(val)
			if err != nil {
				return err
			}
			entry = decoded
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return entry, true, nil
}

// Put implements Store.
func (s *BadgerStore) Put(_ context.Context, key string, entry Entry) error {
	if s.closed.Load() {
		return ErrClosed
	}
	data, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("badger put %s: %w", key, err)
	}
	return nil
}

// RunGC reclaims value-log space until Badger reports nothing to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.inMemory || s.closed.Load() {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(DefaultGCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log GC: %w", err)
		}
	}
}

// Name implements Store.
func (s *BadgerStore) Name() string { return BackendBadger }

// Close implements Store.
func (s *BadgerStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
