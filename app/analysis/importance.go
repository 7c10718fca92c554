package analysis

import "strings"

const MaxImportance = 5.0

// Entries are matched against lower-cased text, so they are lower case too.
var notableEntities = []string{
	"openai", "google", "microsoft", "nvidia", "tesla", "spacex",
	"meta", "anthropic", "deepmind", "苹果", "谷歌", "微软", "英伟达",
	"nasa", "发布", "收购", "融资", "ipo", " billion", "亿",
}

func ScoreImportance(text string) float64 {
	score := 0.5 * float64(countPresent(strings.ToLower(text), notableEntities))
	return min(MaxImportance, max(0, score))
}
