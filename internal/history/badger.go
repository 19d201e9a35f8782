// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	badgerKeyPrefix = "q:"

	// maxScan bounds how many keys one Suggest call reads.
	maxScan = 2000

	conflictRetries = 3
)

// BadgerStore keeps query history in BadgerDB under keys "q:<normalized>".
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a store at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string, syncWrites bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = syncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for query history: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStoreFromDB wraps an existing database. Close leaves it open.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Record implements Store.
//
//nolint:gocritic // hugeParam: entries are small value types
func (s *BadgerStore) Record(ctx context.Context, entry Entry) error {
	key := Normalize(entry.Query)
	if key == "" {
		return ErrEmptyQuery
	}

	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			return s.merge(txn, key, &entry)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

func (s *BadgerStore) merge(txn *badger.Txn, key string, entry *Entry) error {
	dbKey := []byte(badgerKeyPrefix + key)
	rec := record{Query: key}

	item, err := txn.Get(dbKey)
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return fmt.Errorf("get: %w", err)
	default:
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	rec.add(entry)
	data, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return txn.Set(dbKey, data)
}

// Suggest implements Store.
func (s *BadgerStore) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = Normalize(prefix)
	if prefix == "" || limit <= 0 {
		return []string{}, nil
	}

	var records []record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix + prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && len(records) < maxScan; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}

	rankRecords(records)
	out := make([]string, 0, min(limit, len(records)))
	for i := 0; i < len(records) && len(out) < limit; i++ {
		out = append(out, records[i].Query)
	}
	return out, nil
}

// Count returns how often the query was recorded.
func (s *BadgerStore) Count(query string) (int64, error) {
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + Normalize(query)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	return rec.Count, err
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
