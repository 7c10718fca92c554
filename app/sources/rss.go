package sources

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	rssTitleLength   = 200
	rssSummaryLength = 300
)

type RSSSource struct {
	base
	fetcher   *Fetcher
	parser    *feed.Parser
	extractor *feed.ContentExtractor
}

func NewRSSSource(sourceConfig config.SourceConfig, fetcher *Fetcher) *RSSSource {
	return &RSSSource{
		base:      newBase(sourceConfig),
		fetcher:   fetcher,
		parser:    feed.NewParser(),
		extractor: feed.NewContentExtractor(),
	}
}

func (s *RSSSource) Fetch(ctx context.Context) ([]feed.RawItem, error) {
	if s.config.URL == "" {
		return nil, fmt.Errorf("source %s has no url", s.Name())
	}

	data, err := s.fetcher.Get(ctx, s.config.URL, s.timeout(), nil)
	if err != nil {
		return nil, err
	}

	entries, err := s.parser.Run(data)
	if err != nil {
		return nil, err
	}

	fetchedAt := s.now()
	items := make([]feed.RawItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		summary := cmp.Or(entry.Description, entry.Content)
		if summary == "" && s.config.ExtractContent {
			summary = s.extractSummary(ctx, entry.Link)
		}

		items = append(items, feed.RawItem{
			Title:     feed.TruncateRunes(entry.Title, rssTitleLength),
			Link:      entry.Link,
			Summary:   feed.Ellipsize(feed.CollapseSpace(summary), rssSummaryLength),
			Source:    s.Name(),
			PubDate:   entry.Published,
			FetchedAt: fetchedAt,
		})
	}

	return items, nil
}

func (s *RSSSource) extractSummary(ctx context.Context, link string) string {
	page, err := s.fetcher.Get(ctx, link, s.timeout(), nil)
	if err != nil {
		slog.Debug("Failed to fetch article for extraction", "source", s.Name(), "link", link, "error", err)
		return ""
	}

	text, err := s.extractor.Run(page, link)
	if err != nil {
		slog.Debug("Content extraction failed", "source", s.Name(), "link", link, "error", err)
		return ""
	}
	return text
}
