package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

type ItemStats struct {
	TotalItems   int        `json:"total_items"`
	LastNewItems int        `json:"last_new_items"`
	LastRun      *time.Time `json:"last_run"`
}

// ItemsDocument is the rolling window of processed items, oldest first.
type ItemsDocument struct {
	Items   []feed.Item `json:"items"`
	LastRun *time.Time  `json:"last_run"`
	Stats   ItemStats   `json:"stats"`
}

type SessionDocument struct {
	Items   []feed.Item `json:"items"`
	SavedAt time.Time   `json:"saved_at"`
}

// loadDocument decodes key into v. A missing or unreadable document leaves v
// untouched and is only logged.
func loadDocument(store DocumentStore, key string, v any) {
	data, err := store.Get(key)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		slog.Warn("Failed to read document, using defaults", "key", key, "error", err)
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("Corrupt document, using defaults", "key", key, "error", err)
	}
}

func saveDocument(store DocumentStore, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return store.Put(key, data)
}
