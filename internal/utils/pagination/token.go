// Package pagination implements opaque cursor tokens for list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor identifies the position after the last item of the previous page.
// Entries are ordered by (EntryDate, EntryID) so both fields are needed to
// resume without skipping rows that share a date.
type Cursor struct {
	LastDate time.Time `json:"d"`
	LastID   string    `json:"id"`
}

// EncodeToken serializes a cursor into an opaque base64 token.
func EncodeToken(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeToken parses an opaque token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token payload: %w", err)
	}
	return c, nil
}
