// Package config loads runtime configuration for the storefront client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (STOREFRONT_*), typically from a .env file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the storefront API
//	-t duration   per-request timeout ("10s")
//	-s string     storage driver: sqlite, redis or memory
//	-p string     SQLite database file
//	-r string     Redis URL
//	-n int        products per catalog page
//	-l string     log level: debug, info, warn or error
//
// The storage secret is deliberately not a flag; set STOREFRONT_STORAGE_SECRET
// or "storage_secret" in the JSON file.
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "request_timeout": "10s",
//	  "storage_driver": "sqlite",
//	  "storage_path": ".storefront/storefront.db",
//	  "page_size": 12
//	}
package config
