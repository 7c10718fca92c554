package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

// Source is anything that can produce raw items for one ingestion run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]feed.RawItem, error)
}

// Build creates the enabled sources of cfg in configuration order: RSS feeds
// first, then API sources. Sources with an unknown type are skipped.
func Build(cfg *config.Config, fetcher *Fetcher) []Source {
	var result []Source

	for _, sourceConfig := range cfg.Sources.RSS {
		if !sourceConfig.IsEnabled() {
			slog.Debug("Source disabled, skipping", "source", sourceConfig.Name)
			continue
		}
		result = append(result, NewRSSSource(sourceConfig, fetcher))
	}

	for _, sourceConfig := range cfg.Sources.API {
		if !sourceConfig.IsEnabled() {
			slog.Debug("Source disabled, skipping", "source", sourceConfig.Name)
			continue
		}

		switch sourceConfig.Type {
		case config.SourceTypeHackerNews:
			result = append(result, NewHackerNewsSource(sourceConfig, fetcher))
		case config.SourceTypeReddit:
			result = append(result, NewRedditSource(sourceConfig, fetcher))
		case config.SourceTypeArXiv:
			result = append(result, NewArXivSource(sourceConfig, fetcher))
		case config.SourceTypeTwitter:
			result = append(result, NewTwitterSource(sourceConfig, fetcher))
		default:
			slog.Warn("Unknown source type, skipping", "source", sourceConfig.Name, "type", sourceConfig.Type)
		}
	}

	return result
}

type base struct {
	config config.SourceConfig
	now    func() time.Time
}

func newBase(sourceConfig config.SourceConfig) base {
	return base{config: sourceConfig, now: time.Now}
}

func (b base) Name() string {
	return b.config.Name
}

func (b base) timeout() time.Duration {
	return b.config.GetTimeout()
}
