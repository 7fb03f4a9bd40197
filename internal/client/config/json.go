package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/flagx"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Absent or zero fields
// leave the current value untouched.
type JSONConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StorageDriver  string         `json:"storage_driver"`
	StoragePath    string         `json:"storage_path"`
	RedisURL       string         `json:"redis_url"`
	RedisPrefix    string         `json:"redis_prefix"`
	StorageSecret  string         `json:"storage_secret"`
	LoginPath      string         `json:"login_path"`
	PageSize       int            `json:"page_size"`
	LogLevel       string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.StorageSecret, jc.StorageSecret)
	setString(&cfg.LoginPath, jc.LoginPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
