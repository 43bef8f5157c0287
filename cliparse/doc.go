// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Cobra commands bind the same flags on their own flag set and resolve
afterwards:

	cliparse.BindFlags(cmd.Flags(), &flagCfg)
	cfg, err := cliparse.Resolve(cmd.Flags(), flagCfg)

# Config Fields

  - Port: Server listen port (default: 3318)
  - StorageType: sqlite, postgres, file or memory (default: sqlite)
  - DatabaseURL: database URL, or directory for file storage
  - DataDir / QuestionsURL / GiftsURL: dataset locations
  - DeviceSalt: Secret for device cookie signatures (required to serve)
  - PersistDelay: debounce window for saving answers (default: 500ms)
  - LogLevel / LogFormat: slog settings
  - BaseURL: public URL used in printed reports

# Precedence

Lowest to highest:

 1. Defaults
 2. YAML file (--config or GIFTQUIZ_CONFIG)
 3. .env file and environment (PORT, STORAGE_TYPE, DATABASE_URL, DATA_DIR,
    QUESTIONS_URL, GIFTS_URL, DEVICE_SALT, PERSIST_DELAY, LOG_LEVEL,
    LOG_FORMAT, BASE_URL)
 4. Flags that were set explicitly

Secrets are never read from the YAML file.
*/
package cliparse
