// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage provides per-device key-value storage.

Each browser is a device, and each device gets its own namespace, the same
way a browser's local storage is scoped to one origin:

	store, err := storage.Open(storage.TypeSQLite, "data/giftquiz.db")
	err = store.Set(ctx, deviceID, models.StorageKeyAnswers, payload)
	value, err := store.Get(ctx, deviceID, models.StorageKeyAnswers)

# Backends

  - SQLStore: sqlite (modernc.org/sqlite) or postgres (lib/pq)
  - FileStore: one JSON file per device, atomic replace on write
  - MemoryStore: process memory only

Get returns ErrNotFound for missing keys. Remove ignores missing keys.
*/
package storage
