package query

import (
	"slices"
	"sync"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

type MemorySessionCache struct {
	mu    sync.Mutex
	items []feed.Item
}

func NewMemorySessionCache() *MemorySessionCache {
	return &MemorySessionCache{}
}

func (c *MemorySessionCache) Save(items []feed.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = slices.Clone(items)
	return nil
}

func (c *MemorySessionCache) Load() ([]feed.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items), nil
}
