package analysis

import "strings"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var (
	positiveWords = []string{"突破", "成功", "首次", "创新", "领先", "打破", "progress", "success", "breakthrough"}
	negativeWords = []string{"失败", "问题", "争议", "批评", "delay", "failure", "issue", "problem"}
)

func DetectSentiment(text string) Sentiment {
	lower := strings.ToLower(text)
	positive := countPresent(lower, positiveWords)
	negative := countPresent(lower, negativeWords)

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func countPresent(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}
