// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Opening a Connection

	conn, err := db.Open(db.DialectSQLite, "data/giftquiz.db")

sqlite uses modernc.org/sqlite with WAL mode; postgres uses lib/pq.

# Schema Creation

CreateSchema applies the embedded goose migrations for the dialect:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - goose tracks applied versions.

# Tables

  - device: one row per browser, with first and last seen timestamps
  - local_storage: key-value pairs scoped by device_id
*/
package db
