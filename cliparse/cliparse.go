package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultPort         = 3318
	DefaultStorageType  = "sqlite"
	DefaultSQLitePath   = "data/giftquiz.db"
	DefaultFileStoreDir = "data/storage"
	DefaultDataDir      = "data"
	DefaultPersistDelay = 500 * time.Millisecond
)

type Config struct {
	Port         int
	StorageType  string
	DatabaseURL  string
	DataDir      string
	QuestionsURL string
	GiftsURL     string
	DeviceSalt   string
	PersistDelay time.Duration
	LogLevel     string
	LogFormat    string
	BaseURL      string
	ConfigFile   string
}

// fileConfig mirrors Config for the optional YAML file. Secrets stay env-only.
type fileConfig struct {
	Port         int    `yaml:"port"`
	StorageType  string `yaml:"storage_type"`
	DatabaseURL  string `yaml:"database_url"`
	DataDir      string `yaml:"data_dir"`
	QuestionsURL string `yaml:"questions_url"`
	GiftsURL     string `yaml:"gifts_url"`
	PersistDelay string `yaml:"persist_delay"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	BaseURL      string `yaml:"base_url"`
}

// BindFlags registers every config flag on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.StorageType, "storage", "t", "", "Storage type (sqlite, postgres, file or memory)")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL, or directory for file storage")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory holding intrebari.json and daruri.json")
	fs.StringVar(&cfg.QuestionsURL, "questions", "", "Questions dataset path or URL (overrides --data-dir)")
	fs.StringVar(&cfg.GiftsURL, "gifts", "", "Gifts dataset path or URL (overrides --data-dir)")
	fs.StringVar(&cfg.DeviceSalt, "device-salt", "", "Device cookie signing salt (prefer env)")
	fs.DurationVar(&cfg.PersistDelay, "persist-delay", 0, "Quiet period before answers are saved")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in printed reports")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")
}

// ParseFlags parses args and resolves the full configuration.
func ParseFlags(args []string) (Config, error) {
	var flagCfg Config

	fs := pflag.NewFlagSet("giftquiz", pflag.ContinueOnError)
	BindFlags(fs, &flagCfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(fs, flagCfg)
}

// Resolve builds the configuration with precedence
// defaults → YAML file → .env / environment → flags set on fs.
func Resolve(fs *pflag.FlagSet, flagCfg Config) (Config, error) {
	cfg := Config{
		Port:         DefaultPort,
		DataDir:      DefaultDataDir,
		PersistDelay: DefaultPersistDelay,
		LogLevel:     "info",
		LogFormat:    "text",
	}

	// A missing .env is fine; existing variables are never overridden.
	_ = godotenv.Load()

	cfg.ConfigFile = flagCfg.ConfigFile
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("GIFTQUIZ_CONFIG")
	}
	if cfg.ConfigFile != "" {
		if err := loadYAMLFile(&cfg, cfg.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyFlags(fs, &cfg, flagCfg)

	if cfg.StorageType == "" {
		cfg.StorageType = DefaultStorageType
	}
	if cfg.DatabaseURL == "" {
		switch cfg.StorageType {
		case "sqlite":
			cfg.DatabaseURL = DefaultSQLitePath
		case "file":
			cfg.DatabaseURL = DefaultFileStoreDir
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	setString(&cfg.StorageType, fc.StorageType)
	setString(&cfg.DatabaseURL, fc.DatabaseURL)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.QuestionsURL, fc.QuestionsURL)
	setString(&cfg.GiftsURL, fc.GiftsURL)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.BaseURL, fc.BaseURL)
	if fc.PersistDelay != "" {
		d, err := time.ParseDuration(fc.PersistDelay)
		if err != nil {
			return fmt.Errorf("invalid persist_delay %q: %w", fc.PersistDelay, err)
		}
		cfg.PersistDelay = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	setString(&cfg.StorageType, os.Getenv("STORAGE_TYPE"))
	setString(&cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	setString(&cfg.DataDir, os.Getenv("DATA_DIR"))
	setString(&cfg.QuestionsURL, os.Getenv("QUESTIONS_URL"))
	setString(&cfg.GiftsURL, os.Getenv("GIFTS_URL"))
	setString(&cfg.DeviceSalt, os.Getenv("DEVICE_SALT"))
	setString(&cfg.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&cfg.LogFormat, os.Getenv("LOG_FORMAT"))
	setString(&cfg.BaseURL, os.Getenv("BASE_URL"))
	if v := os.Getenv("PERSIST_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("invalid PERSIST_DELAY env variable")
		}
		cfg.PersistDelay = d
	}
	return nil
}

func applyFlags(fs *pflag.FlagSet, cfg *Config, flagCfg Config) {
	if fs == nil {
		return
	}
	if fs.Changed("port") {
		cfg.Port = flagCfg.Port
	}
	if fs.Changed("storage") {
		cfg.StorageType = flagCfg.StorageType
	}
	if fs.Changed("database-url") {
		cfg.DatabaseURL = flagCfg.DatabaseURL
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = flagCfg.DataDir
	}
	if fs.Changed("questions") {
		cfg.QuestionsURL = flagCfg.QuestionsURL
	}
	if fs.Changed("gifts") {
		cfg.GiftsURL = flagCfg.GiftsURL
	}
	if fs.Changed("device-salt") {
		cfg.DeviceSalt = flagCfg.DeviceSalt
	}
	if fs.Changed("persist-delay") {
		cfg.PersistDelay = flagCfg.PersistDelay
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = flagCfg.LogFormat
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = flagCfg.BaseURL
	}
}

func (c Config) validate() error {
	switch c.StorageType {
	case "sqlite", "file", "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PersistDelay < 0 {
		return errors.New("persist delay must not be negative")
	}
	return nil
}

// ValidateServe checks settings only the HTTP server needs.
func (c Config) ValidateServe() error {
	// Secrets - MUST be provided
	if c.DeviceSalt == "" {
		return errors.New("DEVICE_SALT required")
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
