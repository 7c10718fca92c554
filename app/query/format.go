package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	listTitleLength     = 40
	detailSummaryLength = 120
)

var categoryLabels = map[string]string{
	feed.CategoryAI:       "🤖 AI",
	feed.CategoryRobotics: "🦾 机器人",
	feed.CategorySpace:    "🚀 航天",
}

func CategoryEmoji(categories []string) string {
	for _, category := range feed.ReportCategories {
		for _, c := range categories {
			if c == category {
				return strings.Fields(categoryLabels[category])[0]
			}
		}
	}
	return ""
}

// TimeAgo renders the distance between t and now as days, hours or minutes.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	if days := int(diff.Hours() / 24); days > 0 {
		return fmt.Sprintf("%d天前", days)
	}
	if hours := int(diff.Hours()); hours > 0 {
		return fmt.Sprintf("%d小时前", hours)
	}
	if minutes := int(diff.Minutes()); minutes > 0 {
		return fmt.Sprintf("%d分钟前", minutes)
	}
	return "刚刚"
}

func FormatListItem(item feed.Item, index int, now time.Time) string {
	title := item.Title
	if title == "" {
		title = "无标题"
	}
	title = feed.Ellipsize(title, listTitleLength)

	stars := ""
	if item.Importance >= 2 {
		stars = strings.Repeat("⭐", int(item.Importance))
	}

	var meta []string
	if item.Source != "" {
		meta = append(meta, item.Source)
	}
	if ago := TimeAgo(item.FetchedAt, now); ago != "" {
		meta = append(meta, ago)
	}

	parts := []string{fmt.Sprintf("%d.", index)}
	for _, part := range []string{CategoryEmoji(item.Categories), title, stars} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.TrimSpace(strings.Join(parts, " ") + "\n   " + strings.Join(meta, " · "))
}

func FormatList(header string, items []feed.Item, footer string, now time.Time) string {
	lines := []string{header + "\n"}
	for i, item := range items {
		lines = append(lines, FormatListItem(item, i+1, now))
	}
	lines = append(lines, "\n"+footer)
	return strings.Join(lines, "\n")
}

func FormatDetail(item feed.Item, now time.Time) string {
	title := item.Title
	if title == "" {
		title = "无标题"
	}
	lines := []string{"📰 " + title}

	var labels []string
	for _, category := range item.Categories {
		if label, ok := categoryLabels[category]; ok {
			labels = append(labels, label)
		}
	}
	if len(labels) > 0 {
		lines = append(lines, "🏷️ "+strings.Join(labels, " | "))
	}

	var meta []string
	if item.Source != "" {
		meta = append(meta, "📡 "+item.Source)
	}
	if ago := TimeAgo(item.FetchedAt, now); ago != "" {
		meta = append(meta, ago)
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " · "))
	}

	lines = append(lines, "")

	summary := item.AISummary
	if summary == "" {
		summary = item.Summary
	}
	if summary = feed.CollapseSpace(summary); summary != "" {
		if len([]rune(summary)) > detailSummaryLength {
			summary = feed.TruncateRunes(summary, detailSummaryLength-3) + "..."
		}
		lines = append(lines, "📝 "+summary, "")
	}

	if item.Link != "" {
		lines = append(lines, "🔗 "+item.Link)
	}

	return strings.Join(lines, "\n")
}
