// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the giftquiz command.

giftquiz serves a spiritual gifts self-assessment: 133 statements answered
on a 0-3 scale across paginated screens, scored into 19 gifts. Answers are
saved per device (one browser, identified by a signed cookie) so a user can
resume later.

# Commands

Start the server:

	DEVICE_SALT=... giftquiz serve --data-dir ./data

Score an exported answers file:

	giftquiz report --answers answers.json

Apply storage migrations:

	giftquiz migrate -t postgres -d "postgres://..."

# Configuration

Settings resolve in order: defaults, YAML file (--config or GIFTQUIZ_CONFIG),
.env and environment, then flags.

Required settings (serve):

  - DEVICE_SALT (--device-salt): Secret for device cookie HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORAGE_TYPE (-t): sqlite, postgres, file or memory (default: sqlite)
  - DATABASE_URL (-d): Database URL, or directory for file storage
  - DATA_DIR (--data-dir): Directory holding intrebari.json and daruri.json
  - QUESTIONS_URL, GIFTS_URL: Dataset path or http(s) URL
  - PERSIST_DELAY (--persist-delay): Quiet period before saving (default: 500ms)
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output
  - BASE_URL (--base-url): Public URL for links in printed reports

# Architecture

  - catalog: Dataset loading (questions, gifts)
  - storage: Per-device key-value storage (sql, file, memory)
  - db: Database connection and goose migrations
  - session: In-memory device state and debounced saves
  - scoring: Per-gift score aggregation
  - views: View models and html/template rendering
  - handlers: HTTP handlers for screens and the answer API
  - router: chi routes and page resolution
  - middleware: Logging, device cookie, JSON helpers
  - auth: Device ID signing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
