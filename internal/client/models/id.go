// Package models defines the storefront types exchanged with the API and
// persisted by the client: user profiles, products and identifiers.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a product or user. The API may send identifiers either as
// JSON strings or as JSON numbers; both decode to the same textual form, so
// "42" and 42 compare equal.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether no identifier was set.
func (id ID) IsZero() bool { return id == "" }

// MarshalJSON always emits a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", string(b))
	}
	*id = ID(n.String())
	return nil
}
