package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// KVStore is a string-keyed blob store over the kv_store table.
type KVStore struct {
	db *sqlx.DB
}

// NewKVStore creates a new store instance
func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value under key and whether it exists.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT store_value FROM kv_store WHERE store_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapErr("failed to read key", err)
	}
	return []byte(value), true, nil
}

// Put stores value under key, replacing any previous value.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO kv_store (store_key, store_value) VALUES (?, ?)
		ON CONFLICT (store_key) DO UPDATE SET
			store_value = excluded.store_value,
			updated_at = CURRENT_TIMESTAMP
	`), key, string(value))
	if err != nil {
		return wrapErr("failed to write key", err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM kv_store WHERE store_key = ?"), key); err != nil {
		return wrapErr("failed to delete key", err)
	}
	return nil
}
