package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/common"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/cryptox"
)

// SaltKey holds the per-store random salt of a SealedStore. It is stored in
// clear in the wrapped backend.
const SaltKey = "__sealed_salt"

const saltSize = 16

// SealedStore encrypts every value before handing it to the wrapped store.
// Values are AES-GCM sealed with a key derived from a secret and a random
// salt, then base64 encoded.
type SealedStore struct {
	inner Store
	key   []byte
}

// NewSealedStore loads the salt from inner, creating one on first use, and
// derives the sealing key from secret.
func NewSealedStore(ctx context.Context, inner Store, secret []byte) (*SealedStore, error) {
	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}
	return &SealedStore{inner: inner, key: cryptox.DeriveKey(secret, salt)}, nil
}

func loadOrCreateSalt(ctx context.Context, inner Store) ([]byte, error) {
	encoded, ok, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil && len(salt) == saltSize {
			return salt, nil
		}
	}

	// missing or unreadable salt: anything sealed before is lost either way
	salt := common.GenerateRandByteArray(saltSize)
	if err := inner.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("save salt: %w", err)
	}
	return salt, nil
}

// Get returns ErrCorrupt when the stored value does not open with this
// store's key.
func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	encoded, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", true, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	plain, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return "", true, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return string(plain), true, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := cryptox.Seal(s.key, []byte(value))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *SealedStore) Remove(ctx context.Context, keys ...string) error {
	return s.inner.Remove(ctx, keys...)
}

// Close closes the wrapped store when it holds resources.
func (s *SealedStore) Close() error {
	common.WipeByteArray(s.key)
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
