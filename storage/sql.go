// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/giftquiz/db"
)

// SQLStore keeps device storage in the local_storage table.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// OpenSQL opens the database, applies migrations and returns a store.
func OpenSQL(dialect, url string) (*SQLStore, error) {
	conn, err := db.Open(dialect, url)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return NewSQLStore(conn, dialect), nil
}

// NewSQLStore wraps an already migrated connection.
func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) Get(ctx context.Context, device, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT value FROM local_storage WHERE device_id = ? AND key = ?
	`), device, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, device, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO local_storage (device_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (device_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`), device, key, value, now())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, device string, keys ...string) error {
	for _, key := range keys {
		_, err := s.db.ExecContext(ctx, s.rebind(`
			DELETE FROM local_storage WHERE device_id = ? AND key = ?
		`), device, key)
		if err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (s *SQLStore) Touch(ctx context.Context, device string) error {
	ts := now()
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO device (id, created_at, last_seen_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET last_seen_at = excluded.last_seen_at
	`), device, ts, ts)
	if err != nil {
		return fmt.Errorf("touch device: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != db.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
