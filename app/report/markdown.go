package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	DefaultItemsPerCategory = 15
	reportPrefix            = "report-"
	reportSuffix            = ".md"
	keywordSampleSize       = 5
	topKeywordCount         = 3
	reportLinkLength        = 60
)

var ErrNoReport = errors.New("no report generated yet")

type section struct {
	category string
	overview string
	heading  string
}

var sections = []section{
	{feed.CategoryAI, "🤖 AI", "🤖 AI & 大模型"},
	{feed.CategoryRobotics, "🦾 机器人", "🦾 具身智能 & 机器人"},
	{feed.CategorySpace, "🚀 航天", "🚀 航天 & 太空"},
}

// Generator renders the daily Markdown report and stores it in dir.
type Generator struct {
	dir              string
	itemsPerCategory int
	webURL           string
}

func NewGenerator(dir string, itemsPerCategory int, webURL string) *Generator {
	if itemsPerCategory <= 0 {
		itemsPerCategory = DefaultItemsPerCategory
	}
	return &Generator{dir: dir, itemsPerCategory: itemsPerCategory, webURL: webURL}
}

// Run writes report-YYYY-MM-DD.md for now's date and returns its path and
// content. A second run on the same day replaces the file.
func (g *Generator) Run(items []feed.Item, now time.Time) (string, string, error) {
	content := g.Render(items, now)

	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(g.dir, reportPrefix+now.Format("2006-01-02")+reportSuffix)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, content, nil
}

func (g *Generator) Render(items []feed.Item, now time.Time) string {
	byCategory := GroupByCategory(items)

	var b strings.Builder
	fmt.Fprintf(&b, "# 📡 科技情报日报 | %s\n\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "> 生成时间: %s  \n", now.Format("15:04"))
	fmt.Fprintf(&b, "> 本期精选: %d 条相关资讯 | AI自动摘要\n\n", len(items))
	b.WriteString("---\n\n## 📊 本期概览\n\n")
	b.WriteString("| 领域 | 数量 | 热门关键词 |\n|------|------|------------|\n")
	for _, s := range sections {
		group := byCategory[s.category]
		fmt.Fprintf(&b, "| %s | %d | %s |\n", s.overview, len(group), topKeywords(group))
	}
	b.WriteString("\n---\n")

	for _, s := range sections {
		group := byCategory[s.category]
		fmt.Fprintf(&b, "\n## %s (%d 条)\n\n", s.heading, len(group))
		for _, item := range group[:min(len(group), g.itemsPerCategory)] {
			writeItem(&b, item)
		}
	}

	b.WriteString("\n---\n\n*本报告由 StellarPulse 自动生成*  \n")
	if g.webURL != "" {
		fmt.Fprintf(&b, "*Web界面: %s*\n", g.webURL)
	}

	return b.String()
}

// Latest returns the newest report in the directory.
func (g *Generator) Latest() (string, string, error) {
	matches, err := filepath.Glob(filepath.Join(g.dir, reportPrefix+"*"+reportSuffix))
	if err != nil {
		return "", "", fmt.Errorf("failed to list reports: %w", err)
	}
	if len(matches) == 0 {
		return "", "", ErrNoReport
	}

	slices.Sort(matches)
	path := matches[len(matches)-1]

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read report: %w", err)
	}
	return path, string(data), nil
}

// GroupByCategory lists items under each report category, keeping order.
func GroupByCategory(items []feed.Item) map[string][]feed.Item {
	groups := make(map[string][]feed.Item, len(sections))
	for _, item := range items {
		for _, category := range item.Categories {
			if slices.Contains(feed.ReportCategories, category) {
				groups[category] = append(groups[category], item)
			}
		}
	}
	return groups
}

func writeItem(b *strings.Builder, item feed.Item) {
	stars := strings.Repeat("⭐", int(item.Importance))
	fmt.Fprintf(b, "### %s\n\n", strings.TrimSpace(item.Title+" "+stars))
	fmt.Fprintf(b, "- 🔗 [%s...](%s)\n", feed.TruncateRunes(item.Link, reportLinkLength), item.Link)
	fmt.Fprintf(b, "- 📡 %s | 🕐 %s\n", item.Source, item.FetchedAt.Format("2006-01-02 15:04"))

	if item.AISummary != "" {
		fmt.Fprintf(b, "- 📝 AI摘要: %s\n", item.AISummary)
	}
	if len(item.Keywords) > 0 {
		fmt.Fprintf(b, "- 🏷️ 关键词: %s\n", strings.Join(item.Keywords[:min(len(item.Keywords), 5)], ", "))
	}

	b.WriteString("\n")
}

// topKeywords returns the most frequent keywords of the first few items of a
// category.
func topKeywords(items []feed.Item) string {
	counts := make(map[string]int)
	var order []string

	for _, item := range items[:min(len(items), keywordSampleSize)] {
		for _, keyword := range item.Keywords {
			if counts[keyword] == 0 {
				order = append(order, keyword)
			}
			counts[keyword]++
		}
	}

	if len(order) == 0 {
		return "N/A"
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	return strings.Join(order[:min(len(order), topKeywordCount)], ", ")
}
