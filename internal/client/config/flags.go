package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/flagx"
)

var ownFlags = []string{"a", "t", "s", "p", "r", "n", "l"}

// parseFlags applies the flags this package owns. Other flags on the command
// line, such as -c, are filtered out with flagx.Pick before parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the storefront API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: sqlite, redis or memory")
	fs.StringVar(&cfg.StoragePath, "p", cfg.StoragePath, "SQLite database file")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "products per catalog page")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.Pick(args, ownFlags...)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
