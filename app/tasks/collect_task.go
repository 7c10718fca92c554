package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/database"
	"github.com/lysyi3m/stellarpulse/app/feed"
	"github.com/lysyi3m/stellarpulse/app/report"
	"github.com/lysyi3m/stellarpulse/app/sources"
	"github.com/lysyi3m/stellarpulse/app/subscription"
)

// Dependencies are the collaborators of an ingestion run.
type Dependencies struct {
	ConfigCache   *config.Cache
	Fetcher       *sources.Fetcher
	Items         *database.ItemRepository
	Subscriptions *subscription.Manager
	ReportsDir    string
	WebURL        string
}

type CollectResult struct {
	Fetched    int
	Processed  int
	New        int
	Matches    []subscription.Match
	Stats      database.ItemStats
	ReportPath string
	Digest     string
	Items      []feed.Item
}

// CollectTask runs one ingestion pass: fetch every enabled source, process
// the raw items, persist the new ones, match subscriptions and render the
// report.
type CollectTask struct {
	Task
	deps   Dependencies
	now    func() time.Time
	result *CollectResult
}

func NewCollectTask(trigger string, deps Dependencies) *CollectTask {
	return &CollectTask{
		Task: NewTask(TaskTypeCollect, trigger),
		deps: deps,
		now:  time.Now,
	}
}

// Result is nil until Execute succeeds.
func (t *CollectTask) Result() *CollectResult {
	return t.result
}

func (t *CollectTask) Execute(ctx context.Context) error {
	cfg, err := t.deps.ConfigCache.Get()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	raw, err := t.fetchAll(ctx, sources.Build(cfg, t.deps.Fetcher))
	if err != nil {
		return err
	}

	processor := feed.NewProcessor(cfg.Keywords, cfg.Settings.SummaryMaxLength)
	items := processor.Run(raw)
	newItems := feed.SelectNew(items, t.deps.Items.Links())

	runAt := t.now()
	stats, err := t.deps.Items.Append(newItems, runAt)
	if err != nil {
		slog.Error("Task failed", "type", string(t.Type), "trigger", t.Trigger, "error", err)
		return fmt.Errorf("failed to save items: %w", err)
	}

	matches, err := t.deps.Subscriptions.CheckMatches(newItems)
	if err != nil {
		slog.Error("Task failed", "type", string(t.Type), "trigger", t.Trigger, "error", err)
		return fmt.Errorf("failed to check subscriptions: %w", err)
	}
	for _, match := range matches {
		slog.Info("Subscription matched", "keyword", match.Subscription.Keyword, "title", match.Item.Title, "link", match.Item.Link)
	}

	result := &CollectResult{
		Fetched:   len(raw),
		Processed: len(items),
		New:       len(newItems),
		Matches:   matches,
		Stats:     stats,
		Items:     items,
	}

	result.Digest = report.EmptyDigest
	if len(items) > 0 {
		generator := report.NewGenerator(t.deps.ReportsDir, cfg.Settings.ItemsPerCategory, t.deps.WebURL)
		path, _, err := generator.Run(items, runAt)
		if err != nil {
			slog.Warn("Failed to write report", "error", err)
		} else {
			result.ReportPath = path
		}

		result.Digest = report.Digest(items, len(matches), t.deps.WebURL, runAt)
	}
	t.result = result

	slog.Info("Task completed",
		"type", string(t.Type),
		"trigger", t.Trigger,
		"fetched", result.Fetched,
		"processed", result.Processed,
		"new", result.New,
		"matches", len(matches),
		"total", stats.TotalItems,
		"duration", t.GetDuration())

	return nil
}

// fetchAll fetches sources one after another. A failing source contributes
// nothing; only cancellation of ctx aborts the run.
func (t *CollectTask) fetchAll(ctx context.Context, srcs []sources.Source) ([]feed.RawItem, error) {
	var raw []feed.RawItem

	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect cancelled: %w", err)
		}

		items, err := src.Fetch(ctx)
		if err != nil {
			slog.Warn("Failed to fetch source", "source", src.Name(), "error", err)
			continue
		}

		slog.Debug("Source fetched", "source", src.Name(), "items", len(items))
		raw = append(raw, items...)
	}

	return raw, nil
}
