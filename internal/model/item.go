package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is the server-assigned identifier of an item. It is opaque to the client.
// Servers hand out either strings or numbers; both decode into an ID, which
// always encodes back as a string.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: want string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

// Item is the domain model for a todo entry.
// Items are created and changed by the server only; the client replaces them
// wholesale with whatever the server returns.
type Item struct {
	ID          ID     `json:"id,omitempty"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

// Completed returns a copy of it marked as completed.
func (it Item) Completed() Item {
	it.IsCompleted = true
	return it
}
