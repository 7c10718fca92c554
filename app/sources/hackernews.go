package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	hackerNewsBaseURL      = "https://hacker-news.firebaseio.com/v0"
	hackerNewsDefaultLimit = 20
	hackerNewsSourceName   = "HackerNews"
)

type hackerNewsStory struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
}

type HackerNewsSource struct {
	base
	fetcher *Fetcher
	baseURL string
	limiter *rate.Limiter
}

func NewHackerNewsSource(sourceConfig config.SourceConfig, fetcher *Fetcher) *HackerNewsSource {
	return &HackerNewsSource{
		base:    newBase(sourceConfig),
		fetcher: fetcher,
		baseURL: hackerNewsBaseURL,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

func (s *HackerNewsSource) Fetch(ctx context.Context) ([]feed.RawItem, error) {
	var ids []int64
	if err := s.fetcher.GetJSON(ctx, s.baseURL+"/topstories.json", s.timeout(), nil, &ids); err != nil {
		return nil, err
	}

	limit := s.config.Limit
	if limit <= 0 {
		limit = hackerNewsDefaultLimit
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	fetchedAt := s.now()
	items := make([]feed.RawItem, 0, len(ids))
	for _, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			return items, fmt.Errorf("rate limiter: %w", err)
		}

		var story hackerNewsStory
		url := fmt.Sprintf("%s/item/%d.json", s.baseURL, id)
		if err := s.fetcher.GetJSON(ctx, url, s.timeout(), nil, &story); err != nil {
			slog.Debug("Failed to fetch story", "id", id, "error", err)
			continue
		}
		if story.Title == "" {
			continue
		}

		link := story.URL
		if link == "" {
			link = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
		}

		var pubDate string
		if story.Time > 0 {
			pubDate = time.Unix(story.Time, 0).UTC().Format(time.RFC3339)
		}

		items = append(items, feed.RawItem{
			Title:     story.Title,
			Link:      link,
			Summary:   fmt.Sprintf("👍 %d | 💬 %d", story.Score, story.Descendants),
			Source:    hackerNewsSourceName,
			PubDate:   pubDate,
			FetchedAt: fetchedAt,
		})
	}

	return items, nil
}
