package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the sources configuration
type Loader struct {
	path string
}

// NewLoader creates a new configuration loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, defaults and validates the configuration file
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document into a validated Config
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *Config) {
	if config.Settings.ItemsPerCategory == 0 {
		config.Settings.ItemsPerCategory = 15
	}
	if config.Settings.WebPort == 0 {
		config.Settings.WebPort = 8080
	}
	if config.Settings.MaxItems == 0 {
		config.Settings.MaxItems = 1000
	}
	if config.Settings.SummaryMaxLength == 0 {
		config.Settings.SummaryMaxLength = 150
	}
}

// validate validates the configuration
func validate(config *Config) error {
	for i, src := range config.Sources.RSS {
		if src.Name == "" {
			return fmt.Errorf("rss source at index %d: name is required", i)
		}
		if src.URL == "" {
			return fmt.Errorf("rss source %q: url is required", src.Name)
		}
		if src.Timeout < 0 {
			return fmt.Errorf("rss source %q: timeout must be non-negative", src.Name)
		}
	}

	validTypes := map[string]bool{
		SourceTypeHackerNews: true,
		SourceTypeReddit:     true,
		SourceTypeArXiv:      true,
		SourceTypeTwitter:    true,
	}

	for i, src := range config.Sources.API {
		if src.Name == "" {
			return fmt.Errorf("api source at index %d: name is required", i)
		}
		if !validTypes[src.Type] {
			return fmt.Errorf("api source %q: unknown type %q", src.Name, src.Type)
		}
		if src.Timeout < 0 {
			return fmt.Errorf("api source %q: timeout must be non-negative", src.Name)
		}
	}

	seen := make(map[string]bool, len(config.Keywords))
	for i, entry := range config.Keywords {
		if entry.Category == "" {
			return fmt.Errorf("keyword category at index %d has no name", i)
		}
		if seen[entry.Category] {
			return fmt.Errorf("keyword category %q is defined twice", entry.Category)
		}
		seen[entry.Category] = true
	}

	nonNegativeFields := map[string]int{
		"items per category": config.Settings.ItemsPerCategory,
		"web port":           config.Settings.WebPort,
		"max items":          config.Settings.MaxItems,
		"summary max length": config.Settings.SummaryMaxLength,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}
