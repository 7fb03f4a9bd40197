package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the storefront client.
type Config struct {
	ServerBaseURL  string        `env:"STOREFRONT_API_URL"`
	RequestTimeout time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`

	StorageDriver string `env:"STOREFRONT_STORAGE"`
	StoragePath   string `env:"STOREFRONT_STORAGE_PATH"`
	RedisURL      string `env:"STOREFRONT_REDIS_URL"`
	RedisPrefix   string `env:"STOREFRONT_REDIS_PREFIX"`
	StorageSecret string `env:"STOREFRONT_STORAGE_SECRET"`

	LoginPath string `env:"STOREFRONT_LOGIN_PATH"`
	PageSize  int    `env:"STOREFRONT_PAGE_SIZE"`
	LogLevel  string `env:"STOREFRONT_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults suitable for a local API.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 10 * time.Second
	c.StorageDriver = "sqlite"
	c.StoragePath = filepath.Join(".storefront", "storefront.db")
	c.RedisURL = "redis://localhost:6379/0"
	c.RedisPrefix = "storefront:"
	c.StorageSecret = ""
	c.LoginPath = "/login"
	c.PageSize = 12
	c.LogLevel = "info"
}

// Validate reports settings no component can work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server base url %q", c.ServerBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.PageSize <= 0 {
		return errors.New("page size must be positive")
	}
	switch c.StorageDriver {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named in args, the
// environment and finally the flags in args. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process command line.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
