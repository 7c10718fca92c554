package sources

import (
	"cmp"
	"context"
	"net/url"
	"strconv"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	arXivBaseURL         = "http://export.arxiv.org/api/query"
	arXivDefaultCategory = "cs.AI"
	arXivDefaultResults  = 10
	arXivTitleLength     = 200
	arXivSummaryLength   = 400
)

// ArXivSource lists the newest submissions of one arXiv category.
type ArXivSource struct {
	base
	fetcher *Fetcher
	parser  *feed.Parser
	baseURL string
}

func NewArXivSource(sourceConfig config.SourceConfig, fetcher *Fetcher) *ArXivSource {
	return &ArXivSource{
		base:    newBase(sourceConfig),
		fetcher: fetcher,
		parser:  feed.NewParser(),
		baseURL: arXivBaseURL,
	}
}

func (s *ArXivSource) Fetch(ctx context.Context) ([]feed.RawItem, error) {
	category := cmp.Or(s.config.Category, arXivDefaultCategory)

	params := url.Values{}
	params.Set("search_query", "cat:"+category)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(cmp.Or(s.config.MaxResults, arXivDefaultResults)))

	data, err := s.fetcher.Get(ctx, s.baseURL+"?"+params.Encode(), s.timeout(), nil)
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
		title := feed.CollapseSpace(entry.Title)
		if title == "" {
			continue
		}

		items = append(items, feed.RawItem{
			Title:     feed.TruncateRunes(title, arXivTitleLength),
			Link:      entry.Link,
			Summary:   feed.Ellipsize(feed.CollapseSpace(entry.Description), arXivSummaryLength),
			Source:    "arXiv-" + category,
			PubDate:   entry.Published,
			FetchedAt: fetchedAt,
		})
	}

	return items, nil
}
