package query

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

// Skip is returned for messages that are not addressed to the bot.
const Skip = "SKIP"

const (
	listFooter    = "💡 回复数字查看详情"
	defaultFooter = "💡 回复数字查看详情 | /help 查看命令"
	emptyReply    = "📭 暂无数据"
	failedReply   = "❌ 出错了，请稍后再试"
)

const helpText = `📡 StellarPulse 命令

/ai     - AI & 大模型
/robot  - 机器人 & 具身智能
/space  - 航天 & 太空
/hot    - 热门 TOP 5
/latest - 最新 5 条
/search 关键词 - 搜索
/help   - 显示帮助

💡 回复数字 1-8 查看详情`

var commandPrefixes = []string{
	"/tech", "/ai", "/robot", "/space", "/search", "/hot", "/latest", "/help",
	"ai", "robot", "space", "tech",
	"热门", "最新", "帮助", "搜索", "人工智能", "机器人", "具身智能", "航天", "太空",
}

var (
	helpAliases     = []string{"/help", "help", "帮助"}
	latestAliases   = []string{"/latest", "latest", "最新"}
	hotAliases      = []string{"/hot", "hot", "热门"}
	aiAliases       = []string{"/ai", "ai", "人工智能"}
	roboticsAliases = []string{"/robot", "robot", "robotics", "机器人", "具身智能"}
	spaceAliases    = []string{"/space", "space", "航天", "太空"}
	searchCommands  = []string{"/search", "搜索"}
)

type categoryView struct {
	category string
	header   string
	empty    string
}

var (
	aiView       = categoryView{feed.CategoryAI, "🤖 AI & 大模型", "🤖 暂无 AI 相关资讯"}
	roboticsView = categoryView{feed.CategoryRobotics, "🦾 具身智能 & 机器人", "🦾 暂无机器人相关资讯"}
	spaceView    = categoryView{feed.CategorySpace, "🚀 航天 & 太空", "🚀 暂无航天相关资讯"}
)

// ShouldRespond reports whether message is a command or a numeric follow-up.
func ShouldRespond(message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, prefix := range commandPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}

	return isSelection(msg)
}

func isSelection(msg string) bool {
	for n := 1; n <= MaxSelection; n++ {
		if msg == fmt.Sprint(n) {
			return true
		}
	}
	return false
}

type Chat struct {
	engine *Engine
	now    func() time.Time
}

func NewChat(engine *Engine) *Chat {
	return &Chat{engine: engine, now: time.Now}
}

// Reply answers one chat message, or returns Skip when the message is not
// for us.
func (c *Chat) Reply(message string) string {
	if !ShouldRespond(message) {
		return Skip
	}

	msg := strings.TrimSpace(message)
	if isSelection(msg) {
		return c.HandleNumber(msg)
	}
	return c.HandleCommand(msg)
}

func (c *Chat) HandleCommand(command string) string {
	command = strings.ToLower(strings.TrimSpace(command))

	switch {
	case slices.Contains(helpAliases, command):
		return helpText
	case slices.Contains(latestAliases, command):
		return c.list(c.engine.Latest, "📰 最新资讯", emptyReply, listFooter)
	case slices.Contains(hotAliases, command):
		return c.list(c.engine.Hot, "🔥 热门资讯", emptyReply, listFooter)
	case slices.Contains(aiAliases, command):
		return c.category(aiView)
	case slices.Contains(roboticsAliases, command):
		return c.category(roboticsView)
	case slices.Contains(spaceAliases, command):
		return c.category(spaceView)
	}

	if text, ok := parseSearch(command); ok {
		return c.search(text)
	}

	return c.list(c.engine.Default, "📡 科技情报", emptyReply, defaultFooter)
}

func (c *Chat) HandleNumber(input string) string {
	item, err := c.engine.Select(input)

	var tooShort *ListTooShortError
	switch {
	case err == nil:
		return FormatDetail(item, c.now())
	case errors.Is(err, ErrInvalidNumber):
		return "❌ 请输入有效数字"
	case errors.Is(err, ErrOutOfRange):
		return fmt.Sprintf("❌ 请输入 1-%d 的数字", MaxSelection)
	case errors.Is(err, ErrNoQuery):
		return "❌ 请先发送查询命令 (如 /ai /robot)，再回复数字"
	case errors.As(err, &tooShort):
		return fmt.Sprintf("❌ 无效选择，当前列表只有 %d 条", tooShort.Size)
	default:
		slog.Error("Selection failed", "input", input, "error", err)
		return failedReply
	}
}

func (c *Chat) category(view categoryView) string {
	return c.list(func() ([]feed.Item, error) {
		return c.engine.ByCategory(view.category)
	}, view.header, view.empty, listFooter)
}

func (c *Chat) search(text string) string {
	if strings.TrimSpace(text) == "" {
		return "❓ 请输入关键词，如: /search GPT-5"
	}

	results, err := c.engine.Search(text)
	if err != nil {
		slog.Error("Search failed", "query", text, "error", err)
		return failedReply
	}
	if len(results) == 0 {
		return fmt.Sprintf("🔍 未找到 '%s' 相关内容", text)
	}
	return FormatList("🔍 搜索: "+text, results, listFooter, c.now())
}

func (c *Chat) list(run func() ([]feed.Item, error), header, empty, footer string) string {
	results, err := run()
	if err != nil {
		slog.Error("Query failed", "header", header, "error", err)
		return failedReply
	}
	if len(results) == 0 {
		return empty
	}
	return FormatList(header, results, footer, c.now())
}

// parseSearch recognizes "/search q" and "搜索 q". A bare command yields an
// empty query.
func parseSearch(command string) (string, bool) {
	for _, prefix := range searchCommands {
		if command == prefix {
			return "", true
		}
		if rest, ok := strings.CutPrefix(command, prefix+" "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
