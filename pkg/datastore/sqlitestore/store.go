// SPDX-License-Identifier: MPL-2.0

// Package sqlitestore persists the hierarchical data store to a single SQLite
// table. Keys are stored in their serialized form, which keeps the prefix
// scan a plain range query; values are stored as JSON.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfsim/mfsim/pkg/datastore"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath is used when Open is given an empty path.
const DefaultPath = "mfsim.db"

// Store is a datastore.Store backed by SQLite. Values round-trip through
// encoding/json, so numbers read back as float64 and structs as maps.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ datastore.Store   = (*Store)(nil)
	_ datastore.Scanner = (*Store)(nil)
	_ datastore.Mover   = (*Store)(nil)
)

// Open opens or creates the database at path, creating parent directories.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create entries table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Keys returns every key in serialized order.
func (s *Store) Keys(ctx context.Context) ([]datastore.Key, error) {
	return s.queryKeys(ctx, `SELECT key FROM entries ORDER BY key`)
}

// Get returns the decoded value stored under key.
func (s *Store) Get(ctx context.Context, key datastore.Key) (any, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key.Encode()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key datastore.Key, value any) error {
	if err := key.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO entries(key,value) VALUES(?,?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key.Encode(), data); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (s *Store) Delete(ctx context.Context, key datastore.Key) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key.Encode()); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Scan returns the keys sharing a prefix with path. Extensions of path are
// selected with a range on the serialized key; ancestors by exact match.
func (s *Store) Scan(ctx context.Context, path datastore.Key) ([]datastore.Key, error) {
	if len(path) == 0 {
		return s.Keys(ctx)
	}
	enc := path.Encode()
	// 0x20 is the byte after the separator, closing the range of children.
	args := []any{enc, enc + datastore.Separator, enc + "\x20"}
	query := `SELECT key FROM entries WHERE key = ? OR (key >= ? AND key < ?)`
	if len(path) > 1 {
		placeholders := make([]string, 0, len(path)-1)
		for i := 1; i < len(path); i++ {
			placeholders = append(placeholders, "?")
			args = append(args, path[:i].Encode())
		}
		query += ` OR key IN (` + strings.Join(placeholders, ",") + `)`
	}
	return s.queryKeys(ctx, query+` ORDER BY key`, args...)
}

// Move re-keys from to to inside one transaction.
func (s *Store) Move(ctx context.Context, from, to datastore.Key) (retErr error) {
	if err := to.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var payload []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, from.Encode()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("moving %s: %w", from, datastore.ErrKeyNotFound)
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, from.Encode()); err != nil {
		return fmt.Errorf("delete %s: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO entries(key,value) VALUES(?,?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		to.Encode(), payload); err != nil {
		return fmt.Errorf("upsert %s: %w", to, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) queryKeys(ctx context.Context, query string, args ...any) ([]datastore.Key, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var keys []datastore.Key
	for rows.Next() {
		var enc string
		if err := rows.Scan(&enc); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, datastore.DecodeKey(enc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}
