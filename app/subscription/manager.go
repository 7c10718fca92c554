package subscription

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

type Manager struct {
	store    Store
	patterns *PatternCache
	mu       sync.Mutex
	now      func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		patterns: NewPatternCache(),
		now:      time.Now,
	}
}

func (m *Manager) Add(keyword string, categories []string, notify bool) (*Subscription, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if _, err := m.patterns.Get(keyword); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription id: %w", err)
	}

	if len(categories) == 0 {
		categories = slices.Clone(DefaultCategories)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	sub := Subscription{
		ID:         "sub_" + id.String(),
		Keyword:    keyword,
		Categories: categories,
		Notify:     notify,
		CreatedAt:  m.now(),
	}
	doc.Subscriptions = append(doc.Subscriptions, sub)

	if err := m.store.SaveSubscriptions(doc); err != nil {
		return nil, fmt.Errorf("failed to save subscriptions: %w", err)
	}

	slog.Info("Subscription added", "id", sub.ID, "keyword", sub.Keyword)

	return &sub, nil
}

// Remove deletes the subscription with the given id and reports whether it
// existed.
func (m *Manager) Remove(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return false, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	before := len(doc.Subscriptions)
	doc.Subscriptions = slices.DeleteFunc(doc.Subscriptions, func(s Subscription) bool {
		return s.ID == id
	})
	if len(doc.Subscriptions) == before {
		return false, nil
	}

	if err := m.store.SaveSubscriptions(doc); err != nil {
		return false, fmt.Errorf("failed to save subscriptions: %w", err)
	}

	slog.Info("Subscription removed", "id", id)

	return true, nil
}

func (m *Manager) List() ([]Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return doc.Subscriptions, nil
}

// CheckMatches runs every subscription against items. Each match bumps the
// subscription's counter and appends an alert; the history keeps only the
// newest MaxAlertHistory alerts. The document is saved once.
func (m *Manager) CheckMatches(items []feed.Item) ([]Match, error) {
	if len(items) == 0 {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	if len(doc.Subscriptions) == 0 {
		return nil, nil
	}

	var matches []Match
	for _, item := range items {
		text := item.Title + " " + item.Summary

		for i := range doc.Subscriptions {
			sub := &doc.Subscriptions[i]
			if !m.patterns.Matches(sub.Keyword, text) {
				continue
			}

			now := m.now()
			sub.MatchCount++
			matches = append(matches, Match{
				Item:         item,
				Subscription: *sub,
				MatchedAt:    now,
			})
			doc.Alerts = append(doc.Alerts, Alert{
				SubscriptionID: sub.ID,
				Keyword:        sub.Keyword,
				Title:          item.Title,
				Link:           item.Link,
				Time:           now,
			})
		}
	}

	if len(doc.Alerts) > MaxAlertHistory {
		doc.Alerts = slices.Clone(doc.Alerts[len(doc.Alerts)-MaxAlertHistory:])
	}

	if err := m.store.SaveSubscriptions(doc); err != nil {
		return matches, fmt.Errorf("failed to save subscriptions: %w", err)
	}

	if len(matches) > 0 {
		slog.Info("Subscriptions matched", "items", len(items), "matches", len(matches))
	}

	return matches, nil
}

// RecentAlerts returns up to limit of the newest alerts, oldest first.
func (m *Manager) RecentAlerts(limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = DefaultAlertsLimit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	alerts := doc.Alerts
	if len(alerts) > limit {
		alerts = alerts[len(alerts)-limit:]
	}
	return alerts, nil
}

func (m *Manager) Stats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.store.LoadSubscriptions()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load subscriptions: %w", err)
	}

	top := slices.Clone(doc.Subscriptions)
	slices.SortStableFunc(top, func(a, b Subscription) int {
		return b.MatchCount - a.MatchCount
	})
	if len(top) > topKeywordsCount {
		top = top[:topKeywordsCount]
	}

	return Stats{
		SubscriptionCount: len(doc.Subscriptions),
		TotalAlerts:       len(doc.Alerts),
		TopKeywords:       top,
	}, nil
}

// MemoryStore keeps the document in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	doc Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadSubscriptions() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Document{
		Subscriptions: slices.Clone(s.doc.Subscriptions),
		Alerts:        slices.Clone(s.doc.Alerts),
	}, nil
}

func (s *MemoryStore) SaveSubscriptions(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = Document{
		Subscriptions: slices.Clone(doc.Subscriptions),
		Alerts:        slices.Clone(doc.Alerts),
	}
	return nil
}
