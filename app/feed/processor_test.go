package feed

import (
	"strings"
	"testing"

	"github.com/lysyi3m/stellarpulse/app/config"
)

var testKeywords = config.Keywords{
	{Category: CategoryAI, Keywords: []string{"openai", "LLM", "大模型"}},
	{Category: CategoryRobotics, Keywords: []string{"robot"}},
	{Category: CategorySpace, Keywords: []string{"spacex", "nasa"}},
}

func TestDeduplicatorFirstOccurrenceWins(t *testing.T) {
	items := []RawItem{
		{Title: "First", Link: "https://example.com/a"},
		{Title: "No link", Link: "   "},
		{Title: "Second", Link: "https://example.com/b"},
		{Title: "Duplicate", Link: " https://example.com/a "},
	}

	result := NewDeduplicator().Run(items)

	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].Title != "First" {
		t.Errorf("Expected first occurrence to win, got '%s'", result[0].Title)
	}
	if result[1].Title != "Second" {
		t.Errorf("Expected 'Second', got '%s'", result[1].Title)
	}
}

func TestDeduplicatorNormalizesUnicode(t *testing.T) {
	items := []RawItem{
		{Title: "Cafe\u0301 robots ", Link: "https://example.com/cafe"},
	}

	result := NewDeduplicator().Run(items)

	if result[0].Title != "Caf\u00e9 robots" {
		t.Errorf("Expected NFC normalized title, got %q", result[0].Title)
	}
}

func TestClassifier(t *testing.T) {
	classifier := NewClassifier(testKeywords)

	tests := []struct {
		name     string
		item     RawItem
		expected []string
	}{
		{"single category", RawItem{Title: "New LLM released"}, []string{"ai"}},
		{"substring match", RawItem{Title: "Robotics startup"}, []string{"robotics"}},
		{"summary counts", RawItem{Title: "Update", Summary: "NASA and OpenAI"}, []string{"ai", "space"}},
		{"cjk keyword", RawItem{Title: "国产大模型发布"}, []string{"ai"}},
		{"no match", RawItem{Title: "Cooking tips"}, []string{"other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Run(tt.item)
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestProcessorDropsOtherAndSortsByImportance(t *testing.T) {
	processor := NewProcessor(testKeywords, 150)

	raw := []RawItem{
		{Title: "Robot arm demo", Link: "https://example.com/1"},
		{Title: "Cooking tips", Link: "https://example.com/2"},
		{Title: "SpaceX and NASA sign deal", Link: "https://example.com/3"},
		{Title: "Another robot", Link: "https://example.com/4"},
		{Title: "Robot arm demo again", Link: "https://example.com/1"},
	}

	items := processor.Run(raw)

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Link != "https://example.com/3" {
		t.Errorf("Expected most important item first, got %s", items[0].Link)
	}
	if items[1].Link != "https://example.com/1" || items[2].Link != "https://example.com/4" {
		t.Errorf("Expected equal importance items to keep input order, got %s, %s", items[1].Link, items[2].Link)
	}
	for _, item := range items {
		if item.IsOther() {
			t.Errorf("Expected no 'other' items, got %s", item.Link)
		}
		if item.Importance < 0 || item.Importance > 5 {
			t.Errorf("Expected importance in [0,5], got %.1f", item.Importance)
		}
	}
	if items[0].Importance != 1.0 {
		t.Errorf("Expected importance 1.0, got %.1f", items[0].Importance)
	}
}

func TestSelectNew(t *testing.T) {
	items := []Item{
		{RawItem: RawItem{Link: "https://example.com/old"}},
		{RawItem: RawItem{Link: "https://example.com/new"}},
	}

	fresh := SelectNew(items, map[string]bool{"https://example.com/old": true})

	if len(fresh) != 1 || fresh[0].Link != "https://example.com/new" {
		t.Errorf("Expected only the new item, got %v", fresh)
	}
}

func TestEllipsize(t *testing.T) {
	if got := Ellipsize("短文本", 5); got != "短文本" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
	if got := Ellipsize("火箭发射成功了", 4); got != "火箭发射..." {
		t.Errorf("Expected '火箭发射...', got %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	if got := StripHTML("<div>Hello <i>world</i></div>"); got != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", got)
	}
	if got := StripHTML("  plain  "); got != "plain" {
		t.Errorf("Expected 'plain', got %q", got)
	}
}
