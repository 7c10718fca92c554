package feed

import (
	"log/slog"
	"slices"

	"github.com/lysyi3m/stellarpulse/app/analysis"
	"github.com/lysyi3m/stellarpulse/app/config"
)

type Processor struct {
	deduplicator *Deduplicator
	classifier   *Classifier
	analyzer     *analysis.Analyzer
}

func NewProcessor(keywords config.Keywords, summaryLength int) *Processor {
	return &Processor{
		deduplicator: NewDeduplicator(),
		classifier:   NewClassifier(keywords),
		analyzer:     analysis.NewAnalyzer(summaryLength),
	}
}

// Run deduplicates, classifies and analyzes one run's raw items. Items
// classified as other are dropped. The result is ordered by importance,
// highest first, keeping input order among equals.
func (p *Processor) Run(raw []RawItem) []Item {
	unique := p.deduplicator.Run(raw)

	processed := make([]Item, 0, len(unique))
	for _, rawItem := range unique {
		item := Item{
			RawItem:    rawItem,
			Categories: p.classifier.Run(rawItem),
		}
		if item.IsOther() {
			continue
		}

		result := p.analyzer.Run(item.Title, item.Summary)
		item.AISummary = result.Summary
		item.Keywords = result.Keywords
		item.Sentiment = result.Sentiment
		item.Importance = result.Importance

		processed = append(processed, item)
	}

	slices.SortStableFunc(processed, func(a, b Item) int {
		switch {
		case a.Importance > b.Importance:
			return -1
		case a.Importance < b.Importance:
			return 1
		}
		return 0
	})

	slog.Debug("Items processed",
		"raw", len(raw),
		"unique", len(unique),
		"relevant", len(processed))

	return processed
}

// SelectNew returns the items whose link is not in existing.
func SelectNew(items []Item, existing map[string]bool) []Item {
	fresh := make([]Item, 0, len(items))
	for _, item := range items {
		if !existing[item.Link] {
			fresh = append(fresh, item)
		}
	}
	return fresh
}
