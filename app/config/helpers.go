package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IsEnabled reports whether the source is enabled; sources are enabled unless stated otherwise
func (s *SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// GetTimeout returns the timeout as time.Duration
func (s *SourceConfig) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// Categories returns the configured category names in document order
func (k Keywords) Categories() []string {
	names := make([]string, 0, len(k))
	for _, entry := range k {
		names = append(names, entry.Category)
	}
	return names
}

func (k *Keywords) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("keywords must be a mapping of category to keyword list")
	}

	entries := make(Keywords, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var words []string
		if err := node.Content[i+1].Decode(&words); err != nil {
			return fmt.Errorf("keywords for %q: %w", node.Content[i].Value, err)
		}
		entries = append(entries, CategoryKeywords{
			Category: node.Content[i].Value,
			Keywords: words,
		})
	}

	*k = entries
	return nil
}
