package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/cliparse"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

// flagCfg receives the persistent flags; cliparse.Resolve layers it over
// the file and environment.
var flagCfg cliparse.Config

var rootCmd = &cobra.Command{
	Use:           "giftquiz",
	Short:         "Spiritual gifts questionnaire server",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cliparse.BindFlags(rootCmd.PersistentFlags(), &flagCfg)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration and installs the logger it names.
func loadConfig(cmd *cobra.Command) (cliparse.Config, error) {
	cfg, err := cliparse.Resolve(cmd.Flags(), flagCfg)
	if err != nil {
		return cliparse.Config{}, err
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// catalogSource picks explicit dataset locations over the data directory.
func catalogSource(cfg cliparse.Config) catalog.Source {
	src := catalog.DirSource(cfg.DataDir)
	if cfg.QuestionsURL != "" {
		src.Questions = cfg.QuestionsURL
	}
	if cfg.GiftsURL != "" {
		src.Gifts = cfg.GiftsURL
	}
	return src
}
