package feed

import (
	"slices"
	"time"

	"github.com/lysyi3m/stellarpulse/app/analysis"
)

const (
	CategoryAI       = "ai"
	CategoryRobotics = "robotics"
	CategorySpace    = "space"
	CategoryOther    = "other"
)

// Categories shown in reports, chat and RSS output.
var ReportCategories = []string{CategoryAI, CategoryRobotics, CategorySpace}

// RawItem is what a source produces before any processing.
type RawItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	PubDate   string    `json:"pub_date,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Item is a classified and analyzed RawItem. Link is its identity.
type Item struct {
	RawItem
	Categories []string           `json:"categories"`
	AISummary  string             `json:"ai_summary"`
	Keywords   []string           `json:"keywords"`
	Sentiment  analysis.Sentiment `json:"sentiment"`
	Importance float64            `json:"importance"`
}

func (i Item) HasCategory(category string) bool {
	return slices.Contains(i.Categories, category)
}

func (i Item) IsOther() bool {
	return len(i.Categories) == 1 && i.Categories[0] == CategoryOther
}

// Entry is a single feed element as parsed from RSS or Atom.
type Entry struct {
	Title       string
	Link        string
	Description string
	Content     string
	Published   string
	Authors     []string
}
