package sources

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	twitterBaseURL        = "https://api.twitter.com/2"
	twitterDefaultQuery   = `AI OR "artificial intelligence" -is:retweet`
	twitterDefaultResults = 10
	twitterMaxResults     = 100
	twitterTitleLength    = 100
)

var ErrMissingBearerToken = errors.New("missing bearer_token")

type twitterResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"users"`
	} `json:"includes"`
}

// TwitterSource runs a recent-search query against the X API v2.
type TwitterSource struct {
	base
	fetcher *Fetcher
	baseURL string
}

func NewTwitterSource(sourceConfig config.SourceConfig, fetcher *Fetcher) *TwitterSource {
	return &TwitterSource{
		base:    newBase(sourceConfig),
		fetcher: fetcher,
		baseURL: twitterBaseURL,
	}
}

func (s *TwitterSource) Fetch(ctx context.Context) ([]feed.RawItem, error) {
	if s.config.BearerToken == "" {
		return nil, ErrMissingBearerToken
	}

	params := url.Values{}
	params.Set("query", cmp.Or(s.config.Query, twitterDefaultQuery))
	params.Set("max_results", strconv.Itoa(min(cmp.Or(s.config.MaxResults, twitterDefaultResults), twitterMaxResults)))
	params.Set("tweet.fields", "created_at,public_metrics,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username,name")

	headers := map[string]string{"Authorization": "Bearer " + s.config.BearerToken}

	var response twitterResponse
	endpoint := s.baseURL + "/tweets/search/recent?" + params.Encode()
	if err := s.fetcher.GetJSON(ctx, endpoint, s.timeout(), headers, &response); err != nil {
		return nil, err
	}

	usernames := make(map[string]string, len(response.Includes.Users))
	for _, user := range response.Includes.Users {
		usernames[user.ID] = user.Username
	}

	fetchedAt := s.now()
	items := make([]feed.RawItem, 0, len(response.Data))
	for _, tweet := range response.Data {
		username := cmp.Or(usernames[tweet.AuthorID], "unknown")
		metrics := tweet.PublicMetrics

		items = append(items, feed.RawItem{
			Title: feed.Ellipsize(tweet.Text, twitterTitleLength),
			Link:  fmt.Sprintf("https://twitter.com/%s/status/%s", username, tweet.ID),
			Summary: fmt.Sprintf("❤️ %d | 🔁 %d | 💬 %d | by @%s",
				metrics.LikeCount, metrics.RetweetCount, metrics.ReplyCount, username),
			Source:    "X/@" + username,
			PubDate:   tweet.CreatedAt,
			FetchedAt: fetchedAt,
		})
	}

	return items, nil
}
