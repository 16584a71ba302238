// Package cursor provides opaque pagination token encoding/decoding for
// event journal listings.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor represents the internal state of a pagination token.
type Cursor struct {
	// SessionID pins the token to one journal; a token presented against
	// a different session is rejected.
	SessionID string `json:"sid"`
	// NextSeq is the sequence number the next page starts from.
	NextSeq uint64 `json:"seq"`
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 string to a cursor. The token must
// belong to the given session.
func Decode(token, sessionID string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.SessionID != sessionID {
		return Cursor{}, fmt.Errorf("cursor belongs to another session")
	}
	return c, nil
}
