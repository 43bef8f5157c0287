// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database dialects
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Open connects to the database and applies pragmas for sqlite.
// The schema is not touched; call CreateSchema for that.
func Open(dialect, url string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
		if dir := filepath.Dir(url); url != ":memory:" && dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	case DialectPostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialect == DialectSQLite {
		// Single connection: sqlite has one writer, and :memory: databases are per connection.
		conn.SetMaxOpenConns(1)
		if err := enablePragmas(conn); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return conn, nil
}

func enablePragmas(conn *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// CreateSchema applies all pending migrations for the dialect.
// Safe to call multiple times.
func CreateSchema(conn *sql.DB, dialect string) error {
	sub, err := fs.Sub(migrations, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(conn, "."); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
