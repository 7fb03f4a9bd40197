// Package storage provides the durable key/value store the session manager
// and the cart engine persist themselves to.
//
// Values are opaque strings. Each owner uses its own disjoint keys; the store
// itself attaches no meaning to them. Four implementations are available:
//
//   - SQLiteStore: the default, a local database file with goose migrations.
//   - RedisStore: a shared Redis instance, for kiosk or shared-terminal setups.
//   - MemoryStore: process-local, nothing survives a restart.
//   - SealedStore: wraps any of the above and encrypts values at rest.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	// ErrCorrupt is returned by Get when a stored value exists but cannot be
	// decoded by the store itself (for example a sealed value that fails
	// authentication).
	ErrCorrupt = errors.New("stored value is corrupt")
)

// Store is the key/value contract shared by all backends.
//
// Get reports ok=false, with a nil error, when the key is absent. Remove
// accepts several keys and succeeds when some or all of them are missing.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Backend is a Store that holds resources.
type Backend interface {
	Store
	io.Closer
}

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver string
	// Path is the SQLite database file.
	Path string
	// RedisURL is a redis:// URL; RedisPrefix namespaces every key.
	RedisURL    string
	RedisPrefix string
	// Secret, when non-empty, wraps the backend in a SealedStore.
	Secret string
	Logger logging.Logger
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	var (
		b   Backend
		err error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		b, err = OpenSQLite(ctx, opts.Path)
	case DriverRedis:
		b, err = OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	case DriverMemory:
		b = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "storage opened", "driver", opts.Driver, "sealed", opts.Secret != "")

	if opts.Secret == "" {
		return b, nil
	}

	sealed, err := NewSealedStore(ctx, b, []byte(opts.Secret))
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return sealed, nil
}
