package analysis

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const DefaultKeywordCount = 5

var tokenPattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,}|[a-zA-Z]+`)

var stopwords = map[string]bool{
	"的": true, "了": true, "在": true, "是": true, "我": true, "有": true,
	"和": true, "就": true, "不": true, "人": true, "都": true, "一": true,
	"一个": true, "上": true, "也": true, "很": true, "到": true, "说": true,
	"要": true, "去": true, "你": true, "会": true, "着": true, "没有": true,
	"看": true, "好": true, "自己": true, "这": true,
}

type KeywordExtractor struct {
	topK int
}

func NewKeywordExtractor(topK int) *KeywordExtractor {
	if topK <= 0 {
		topK = DefaultKeywordCount
	}
	return &KeywordExtractor{topK: topK}
}

// Run returns the most frequent tokens of text. Equal counts keep the order
// in which the tokens first appeared.
func (e *KeywordExtractor) Run(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, token := range tokenPattern.FindAllString(text, -1) {
		token = strings.ToLower(token)
		if utf8.RuneCountInString(token) < 2 || stopwords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})

	if len(order) > e.topK {
		order = order[:e.topK]
	}
	return order
}
