package snapshot

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the serialized form of a saved order.
type Record struct {
	// ListID identifies the list.
	ListID string `json:"list_id"`

	// Items are the item keys in order.
	Items []string `json:"items"`

	// SavedAt is when the order was committed.
	SavedAt time.Time `json:"saved_at"`

	// Version is the serialization format version.
	Version int `json:"version"`
}

// CurrentVersion is the current version of the serialization format.
const CurrentVersion = 1

// Encode serializes an order.
func Encode(listID string, order []string) ([]byte, error) {
	return json.Marshal(Record{
		ListID:  listID,
		Items:   order,
		SavedAt: time.Now().UTC(),
		Version: CurrentVersion,
	})
}

// Decode parses a serialized order.
func Decode(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("snapshot: decode record: %w", err)
	}
	if r.Version > CurrentVersion {
		return nil, fmt.Errorf("snapshot: unsupported record version %d", r.Version)
	}
	return &r, nil
}
