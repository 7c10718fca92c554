package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	digestTopItems    = 3
	digestTitleLength = 35
)

// EmptyDigest replaces the digest of a run without relevant items.
const EmptyDigest = "📭 本期无相关资讯"

// Digest is the short push message summarizing one run.
func Digest(items []feed.Item, matchCount int, webURL string, now time.Time) string {
	if len(items) == 0 {
		return EmptyDigest
	}

	groups := GroupByCategory(items)

	var b strings.Builder
	fmt.Fprintf(&b, "📡 StellarPulse 日报 %s\n\n", now.Format("01-02 15:04"))
	fmt.Fprintf(&b, "🤖 AI: %d | 🦾 机器人: %d | 🚀 航天: %d\n\n",
		len(groups[feed.CategoryAI]), len(groups[feed.CategoryRobotics]), len(groups[feed.CategorySpace]))

	b.WriteString("🔥 热门资讯:\n")
	for i, item := range items[:min(len(items), digestTopItems)] {
		fmt.Fprintf(&b, "%d. %s\n", i+1, feed.Ellipsize(item.Title, digestTitleLength))
	}

	if matchCount > 0 {
		fmt.Fprintf(&b, "\n🔔 关键词命中: %d条\n", matchCount)
	}

	b.WriteString("\n📄 完整报告已生成")
	if webURL != "" {
		fmt.Fprintf(&b, "\n🌐 Web: %s", webURL)
	}

	return b.String()
}
