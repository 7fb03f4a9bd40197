package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecode_Valid(t *testing.T) {
	c, ok := Decode(makeToken(`{"sub":"42","exp":1700000000}`))
	require.True(t, ok)

	exp, ok := c.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), exp.UTC())
	assert.Equal(t, "42", c.Subject())
}

func TestDecode_PaddedPayload(t *testing.T) {
	seg := base64.URLEncoding.EncodeToString([]byte(`{"exp":12}`))
	require.True(t, strings.HasSuffix(seg, "="))
	padded := "h." + seg + ".s"

	c, ok := Decode(padded)
	require.True(t, ok)
	_, ok = c.ExpiresAt()
	assert.True(t, ok)
}

func TestDecode_URLSafeAlphabet(t *testing.T) {
	var raw string
	for n := 0; n < 8 && raw == ""; n++ {
		payload := `{"exp":1,"p":"` + strings.Repeat("?", n) + `>>"}`
		seg := base64.RawURLEncoding.EncodeToString([]byte(payload))
		if strings.ContainsAny(seg, "-_") {
			raw = "h." + seg + ".s"
		}
	}
	require.NotEmpty(t, raw, "no payload produced a url-safe character")

	_, ok := Decode(raw)
	assert.True(t, ok)
}

func TestDecode_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":            "",
		"one segment":      "abc",
		"two segments":     "a.b",
		"four segments":    "a.b.c.d",
		"bad base64":       "h.!!!.s",
		"not json":         "h." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".s",
		"json array":       makeToken(`[1,2]`),
		"json null":        makeToken(`null`),
		"truncated object": makeToken(`{"exp":`),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				c, ok := Decode(raw)
				assert.False(t, ok)
				_, ok = c.ExpiresAt()
				assert.False(t, ok)
				assert.Empty(t, c.Subject())
			})
		})
	}
}

func TestExpiresAt_MissingOrNonNumeric(t *testing.T) {
	for _, payload := range []string{`{}`, `{"exp":"tomorrow"}`, `{"exp":true}`, `{"exp":null}`} {
		c, ok := Decode(makeToken(payload))
		require.True(t, ok, payload)

		_, ok = c.ExpiresAt()
		assert.False(t, ok, payload)
	}
}

func TestValid(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"future", makeToken(`{"exp":1700000060}`), true},
		{"one second ahead", makeToken(`{"exp":1700000001}`), true},
		{"exactly now", makeToken(`{"exp":1700000000}`), false},
		{"past", makeToken(`{"exp":1699999999}`), false},
		{"no exp", makeToken(`{"sub":"1"}`), false},
		{"string exp", makeToken(`{"exp":"1700000060"}`), false},
		{"malformed", "not-a-token", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.raw, now))
		})
	}
}

func TestValid_MillisecondBoundary(t *testing.T) {
	raw := makeToken(`{"exp":1700000000}`)

	assert.True(t, Valid(raw, time.UnixMilli(1_700_000_000_000-1)))
	assert.False(t, Valid(raw, time.UnixMilli(1_700_000_000_000)))
}
