package feed

import (
	"strings"

	"github.com/lysyi3m/stellarpulse/app/config"
)

type Classifier struct {
	keywords config.Keywords
}

func NewClassifier(keywords config.Keywords) *Classifier {
	return &Classifier{keywords: keywords}
}

// Run returns the categories whose keyword lists hit the item, in
// configuration order, or [other] when none do.
func (c *Classifier) Run(item RawItem) []string {
	text := item.Title + " " + item.Summary

	var categories []string
	for _, group := range c.keywords {
		if c.matchesAny(text, group.Keywords) {
			categories = append(categories, group.Category)
		}
	}

	if len(categories) == 0 {
		return []string{CategoryOther}
	}
	return categories
}

func (c *Classifier) matchesAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if c.matchesKeyword(text, keyword) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesKeyword(value, keyword string) bool {
	return keyword != "" && strings.Contains(strings.ToLower(value), strings.ToLower(keyword))
}
