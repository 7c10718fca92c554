package database

import (
	"sync"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

// SessionRepository persists the single query result slot.
type SessionRepository struct {
	store DocumentStore
	key   string
	mu    sync.Mutex
	now   func() time.Time
}

func NewSessionRepository(store DocumentStore, key string) *SessionRepository {
	if key == "" {
		key = SessionKey
	}
	return &SessionRepository{store: store, key: key, now: time.Now}
}

func (r *SessionRepository) Save(items []feed.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if items == nil {
		items = []feed.Item{}
	}
	return saveDocument(r.store, r.key, SessionDocument{Items: items, SavedAt: r.now()})
}

func (r *SessionRepository) Load() ([]feed.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := SessionDocument{}
	loadDocument(r.store, r.key, &doc)
	return doc.Items, nil
}
