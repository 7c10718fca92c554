package subscription

import (
	"time"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

const (
	MaxAlertHistory    = 100
	DefaultAlertsLimit = 20
	topKeywordsCount   = 5
)

var DefaultCategories = []string{feed.CategoryAI, feed.CategoryRobotics, feed.CategorySpace}

// Subscription is a keyword pattern. Categories are informational and do not
// restrict matching.
type Subscription struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Categories []string  `json:"categories"`
	Notify     bool      `json:"notify"`
	CreatedAt  time.Time `json:"created_at"`
	MatchCount int       `json:"match_count"`
}

type Alert struct {
	SubscriptionID string    `json:"subscription_id"`
	Keyword        string    `json:"keyword"`
	Title          string    `json:"title"`
	Link           string    `json:"link"`
	Time           time.Time `json:"time"`
}

// Match is reported for every item and subscription pair that matched in a
// pass. It is not persisted.
type Match struct {
	Item         feed.Item    `json:"item"`
	Subscription Subscription `json:"subscription"`
	MatchedAt    time.Time    `json:"matched_at"`
}

// Document is the persisted state of all subscriptions and the alert history.
type Document struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Alerts        []Alert        `json:"alerts"`
}

type Stats struct {
	SubscriptionCount int            `json:"subscription_count"`
	TotalAlerts       int            `json:"total_alerts"`
	TopKeywords       []Subscription `json:"top_keywords"`
}

type Store interface {
	LoadSubscriptions() (*Document, error)
	SaveSubscriptions(doc *Document) error
}
