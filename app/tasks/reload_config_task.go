package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/stellarpulse/app/config"
)

// ReloadConfigTask re-reads sources.yml. On failure the previous
// configuration stays active.
type ReloadConfigTask struct {
	Task
	configCache *config.Cache
}

func NewReloadConfigTask(trigger string, configCache *config.Cache) *ReloadConfigTask {
	return &ReloadConfigTask{
		Task:        NewTask(TaskTypeReloadConfig, trigger),
		configCache: configCache,
	}
}

func (t *ReloadConfigTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := t.configCache.Reload()
	if err != nil {
		slog.Error("Task failed", "type", string(t.Type), "trigger", t.Trigger, "error", err)
		return fmt.Errorf("failed to reload config: %w", err)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"trigger", t.Trigger,
		"rss_sources", len(cfg.Sources.RSS),
		"api_sources", len(cfg.Sources.API),
		"duration", t.GetDuration())

	return nil
}
