// Package token reads the claims of a bearer token without verifying its
// signature. Verification is the server's job; the client only needs the
// expiry to know when to drop a session.
package token

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is the decoded payload segment of a token.
type Claims struct {
	m jwt.MapClaims
}

// Decode returns the payload claims of raw. The second result is false when
// raw is not a three-segment token or its payload is not base64url encoded
// JSON object; Decode never fails any other way.
func Decode(raw string) (Claims, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, false
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, false
	}

	var m jwt.MapClaims
	if err := json.Unmarshal(payload, &m); err != nil || m == nil {
		return Claims{}, false
	}
	return Claims{m: m}, true
}

// ExpiresAt returns the exp claim. It is false when the claim is missing or
// not numeric.
func (c Claims) ExpiresAt() (time.Time, bool) {
	if c.m == nil {
		return time.Time{}, false
	}
	exp, err := c.m.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Subject returns the sub claim, or "".
func (c Claims) Subject() string {
	if c.m == nil {
		return ""
	}
	sub, _ := c.m.GetSubject()
	return sub
}

// Valid reports whether raw decodes, carries a numeric exp, and that expiry
// is strictly after now at millisecond precision.
func Valid(raw string, now time.Time) bool {
	claims, ok := Decode(raw)
	if !ok {
		return false
	}
	exp, ok := claims.ExpiresAt()
	if !ok {
		return false
	}
	return exp.UnixMilli() > now.UnixMilli()
}
