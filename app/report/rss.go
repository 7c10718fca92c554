package report

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

var feedTitles = map[string]string{
	feed.CategoryAI:       "StellarPulse: AI & 大模型",
	feed.CategoryRobotics: "StellarPulse: 具身智能 & 机器人",
	feed.CategorySpace:    "StellarPulse: 航天 & 太空",
}

// RSS renders items of one category as an RSS 2.0 document. Items must
// already be filtered and ordered.
func RSS(category string, items []feed.Item, selfLink, version string) (string, error) {
	slog.Debug("Generating RSS feed", "category", category, "itemCount", len(items))

	updated := time.Now()
	if len(items) > 0 {
		updated = items[0].FetchedAt
	}

	out := &feeds.Feed{
		Title:       cmp.Or(feedTitles[category], "StellarPulse: "+category),
		Link:        &feeds.Link{Href: selfLink},
		Description: strings.TrimSpace(fmt.Sprintf("StellarPulse %s %s items", version, category)),
		Created:     updated,
		Updated:     updated,
	}

	for _, item := range items {
		description := cmp.Or(item.AISummary, item.Summary)
		if len(item.Keywords) > 0 {
			description += "\n\n🏷️ " + strings.Join(item.Keywords, ", ")
		}

		out.Items = append(out.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Id:          item.Link,
			Author:      &feeds.Author{Name: item.Source},
			Description: description,
			Created:     item.FetchedAt,
		})
	}

	rss, err := out.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to render RSS: %w", err)
	}
	return rss, nil
}
