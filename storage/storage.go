// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"fmt"
)

// Supported storage types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeFile     = "file"
	TypeMemory   = "memory"
)

var ErrNotFound = errors.New("key not found")

// Store is a key-value namespace per device, the server-side stand-in for a
// browser's local storage.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, device, key string) (string, error)
	Set(ctx context.Context, device, key, value string) error
	// Remove deletes keys; missing keys are ignored.
	Remove(ctx context.Context, device string, keys ...string) error
	// Touch records that the device was seen.
	Touch(ctx context.Context, device string) error
	Close() error
}

// Open creates a Store of the given type. location is a database URL for
// sqlite/postgres, a directory for file, and ignored for memory.
func Open(storeType, location string) (Store, error) {
	switch storeType {
	case TypeSQLite, TypePostgres:
		return OpenSQL(storeType, location)
	case TypeFile:
		return NewFileStore(location)
	case TypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", storeType)
	}
}
