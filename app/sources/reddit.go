package sources

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	redditBaseURL          = "https://www.reddit.com"
	redditDefaultSubreddit = "technology"
	redditDefaultLimit     = 15
	redditTitleLength      = 200
)

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

type RedditSource struct {
	base
	fetcher *Fetcher
	baseURL string
}

func NewRedditSource(sourceConfig config.SourceConfig, fetcher *Fetcher) *RedditSource {
	return &RedditSource{
		base:    newBase(sourceConfig),
		fetcher: fetcher,
		baseURL: redditBaseURL,
	}
}

func (s *RedditSource) Fetch(ctx context.Context) ([]feed.RawItem, error) {
	subreddit := cmp.Or(s.config.Subreddit, redditDefaultSubreddit)
	limit := cmp.Or(s.config.Limit, redditDefaultLimit)

	var listing redditListing
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", s.baseURL, subreddit, limit)
	if err := s.fetcher.GetJSON(ctx, url, s.timeout(), nil, &listing); err != nil {
		return nil, err
	}

	fetchedAt := s.now()
	items := make([]feed.RawItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}

		var pubDate string
		if post.CreatedUTC > 0 {
			pubDate = time.Unix(int64(post.CreatedUTC), 0).UTC().Format(time.RFC3339)
		}

		items = append(items, feed.RawItem{
			Title:     feed.TruncateRunes(post.Title, redditTitleLength),
			Link:      "https://reddit.com" + post.Permalink,
			Summary:   fmt.Sprintf("👍 %d | 💬 %d | r/%s", post.Score, post.NumComments, subreddit),
			Source:    "Reddit-r/" + subreddit,
			PubDate:   pubDate,
			FetchedAt: fetchedAt,
		})
	}

	return items, nil
}
