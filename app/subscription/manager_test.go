package subscription

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lysyi3m/stellarpulse/app/feed"
)

func newItem(title, link string) feed.Item {
	return feed.Item{RawItem: feed.RawItem{Title: title, Link: link}}
}

func TestManagerAddDefaults(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	sub, err := manager.Add("OpenAI", nil, true)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(sub.ID, "sub_") {
		t.Errorf("Expected id with 'sub_' prefix, got '%s'", sub.ID)
	}
	if strings.Join(sub.Categories, ",") != "ai,robotics,space" {
		t.Errorf("Expected default categories, got %v", sub.Categories)
	}
	if sub.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	other, err := manager.Add("NASA", []string{"space"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == sub.ID {
		t.Error("Expected distinct subscription ids")
	}

	subs, err := manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Errorf("Expected 2 subscriptions, got %d", len(subs))
	}
}

func TestManagerAddRejectsEmptyKeyword(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	if _, err := manager.Add("   ", nil, true); err == nil {
		t.Error("Expected error for empty keyword")
	}
}

func TestManagerRemove(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	sub, err := manager.Add("robot", nil, true)
	if err != nil {
		t.Fatal(err)
	}

	removed, err := manager.Remove(sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("Expected subscription to be removed")
	}

	removed, err = manager.Remove(sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("Expected second removal to report false")
	}
}

func TestManagerCheckMatches(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	openSub, _ := manager.Add("Open*", nil, true)
	_, _ = manager.Add("nitter", nil, true)

	items := []feed.Item{
		newItem("OpenAI ships a new model", "https://example.com/1"),
		newItem("critter update", "https://example.com/2"),
		newItem("Weekly roundup", "https://example.com/3"),
	}
	items[2].Summary = "Includes an openness report"

	matches, err := manager.CheckMatches(items)
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Item.Link != "https://example.com/1" || matches[0].Subscription.ID != openSub.ID {
		t.Errorf("Expected first match for item 1, got %s", matches[0].Item.Link)
	}
	if matches[1].Subscription.MatchCount != 2 {
		t.Errorf("Expected match count 2 on second match, got %d", matches[1].Subscription.MatchCount)
	}

	stats, err := manager.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.SubscriptionCount != 2 {
		t.Errorf("Expected 2 subscriptions, got %d", stats.SubscriptionCount)
	}
	if stats.TotalAlerts != 2 {
		t.Errorf("Expected 2 alerts, got %d", stats.TotalAlerts)
	}
	if stats.TopKeywords[0].Keyword != "Open*" || stats.TopKeywords[0].MatchCount != 2 {
		t.Errorf("Expected 'Open*' with 2 matches on top, got %+v", stats.TopKeywords[0])
	}
}

func TestManagerAlertHistoryIsCapped(t *testing.T) {
	manager := NewManager(NewMemoryStore())

	if _, err := manager.Add("launch", nil, true); err != nil {
		t.Fatal(err)
	}

	items := make([]feed.Item, 150)
	for i := range items {
		items[i] = newItem(fmt.Sprintf("Launch %d", i), fmt.Sprintf("https://example.com/%d", i))
	}

	matches, err := manager.CheckMatches(items)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 150 {
		t.Errorf("Expected 150 matches, got %d", len(matches))
	}

	alerts, err := manager.RecentAlerts(1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(alerts) != MaxAlertHistory {
		t.Fatalf("Expected %d alerts, got %d", MaxAlertHistory, len(alerts))
	}
	if alerts[0].Title != "Launch 50" {
		t.Errorf("Expected oldest retained alert 'Launch 50', got '%s'", alerts[0].Title)
	}
	if alerts[len(alerts)-1].Title != "Launch 149" {
		t.Errorf("Expected newest alert 'Launch 149', got '%s'", alerts[len(alerts)-1].Title)
	}

	recent, err := manager.RecentAlerts(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != DefaultAlertsLimit {
		t.Errorf("Expected %d recent alerts, got %d", DefaultAlertsLimit, len(recent))
	}

	subs, _ := manager.List()
	if subs[0].MatchCount != 150 {
		t.Errorf("Expected match count 150, got %d", subs[0].MatchCount)
	}
}
