package config

import (
	"fmt"
	"log/slog"
	"sync"
)

// Cache holds the current configuration and allows reloading it from disk
type Cache struct {
	loader  *Loader
	current *Config
	mu      sync.RWMutex
}

func NewCache(path string) *Cache {
	return &Cache{loader: NewLoader(path)}
}

// Run loads the configuration for the first time
func (c *Cache) Run() error {
	_, err := c.Reload()
	return err
}

// Reload re-reads the configuration file. The previous configuration stays
// active when the new one fails to load.
func (c *Cache) Reload() (*Config, error) {
	config, err := c.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", c.loader.path, err)
	}

	c.mu.Lock()
	c.current = config
	c.mu.Unlock()

	slog.Debug("Configuration loaded",
		"path", c.loader.path,
		"rss_sources", len(config.Sources.RSS),
		"api_sources", len(config.Sources.API),
		"categories", len(config.Keywords))

	return config, nil
}

// Get returns the active configuration
func (c *Cache) Get() (*Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil, fmt.Errorf("configuration %s not loaded", c.loader.path)
	}
	return c.current, nil
}
