package database

import (
	"sync"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

const DefaultMaxItems = 1000

// ItemRepository handles the persisted window of processed items
type ItemRepository struct {
	store    DocumentStore
	maxItems int
	mu       sync.Mutex
}

func NewItemRepository(store DocumentStore, maxItems int) *ItemRepository {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &ItemRepository{store: store, maxItems: maxItems}
}

func (r *ItemRepository) Load() *ItemsDocument {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *ItemRepository) load() *ItemsDocument {
	doc := &ItemsDocument{}
	loadDocument(r.store, ItemsKey, doc)
	return doc
}

func (r *ItemRepository) LoadItems() ([]feed.Item, error) {
	return r.Load().Items, nil
}

// Links returns the set of stored item links.
func (r *ItemRepository) Links() map[string]bool {
	doc := r.Load()

	links := make(map[string]bool, len(doc.Items))
	for _, item := range doc.Items {
		links[item.Link] = true
	}
	return links
}

// Append adds newItems to the end of the window, evicting the oldest items
// beyond the configured maximum, and records run statistics.
func (r *ItemRepository) Append(newItems []feed.Item, runAt time.Time) (ItemStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.load()

	items := append(doc.Items, newItems...)
	if len(items) > r.maxItems {
		items = items[len(items)-r.maxItems:]
	}

	doc.Items = items
	doc.LastRun = &runAt
	doc.Stats = ItemStats{
		TotalItems:   len(items),
		LastNewItems: len(newItems),
		LastRun:      &runAt,
	}

	if err := saveDocument(r.store, ItemsKey, doc); err != nil {
		return ItemStats{}, err
	}

	return doc.Stats, nil
}
