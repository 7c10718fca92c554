package api

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/stellarpulse/app/feed"
	"github.com/lysyi3m/stellarpulse/app/query"
	"github.com/lysyi3m/stellarpulse/app/report"
	"github.com/lysyi3m/stellarpulse/app/subscription"
	"github.com/lysyi3m/stellarpulse/app/tasks"
)

const maxItemsLimit = 100

// NewHandler wires the HTTP handlers. scheduler may be nil, in which case the
// collect and reload endpoints answer 503.
func NewHandler(deps tasks.Dependencies, engine *query.Engine,
	scheduler tasks.TaskSchedulerInterface, baseURL, version string) *Handler {
	return &Handler{
		deps:      deps,
		engine:    engine,
		chat:      query.NewChat(engine),
		reports:   report.NewGenerator(deps.ReportsDir, 0, ""),
		scheduler: scheduler,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	doc := h.deps.Items.Load()

	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"items":     len(doc.Items),
		"last_run":  doc.LastRun,
	}

	if subscriptions, err := h.deps.Subscriptions.List(); err == nil {
		health["subscriptions"] = len(subscriptions)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	doc := h.deps.Items.Load()

	bySource := make(map[string]int)
	byCategory := make(map[string]int)
	for _, item := range doc.Items {
		bySource[item.Source]++
		for _, category := range item.Categories {
			byCategory[category]++
		}
	}

	stats := map[string]interface{}{
		"total_items":    len(doc.Items),
		"last_new_items": doc.Stats.LastNewItems,
		"last_run":       doc.LastRun,
		"by_source":      bySource,
		"by_category":    byCategory,
	}

	if subStats, err := h.deps.Subscriptions.Stats(); err == nil {
		stats["subscriptions"] = subStats
	} else {
		slog.Error("Failed to load subscription stats", "error", err)
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) PostChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	reply := h.chat.Reply(req.Message)
	if reply == query.Skip {
		c.JSON(http.StatusOK, gin.H{"skip": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *Handler) GetItems(c *gin.Context) {
	ordering, err := query.ParseOrdering(c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := parseLimit(c.Query("limit"), query.DefaultLimit, maxItemsLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	items, err := h.engine.Find(query.Query{
		Category: c.Query("category"),
		Text:     strings.TrimSpace(c.Query("q")),
		Ordering: ordering,
		Limit:    limit,
	})
	if err != nil {
		slog.Error("Query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	subscriptions, err := h.deps.Subscriptions.List()
	if err != nil {
		slog.Error("Failed to list subscriptions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": subscriptions,
		"total":         len(subscriptions),
	})
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing keyword"})
		return
	}

	notify := req.Notify == nil || *req.Notify
	sub, err := h.deps.Subscriptions.Add(req.Keyword, req.Categories, notify)
	if err != nil {
		slog.Error("Failed to add subscription", "keyword", req.Keyword, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.deps.Subscriptions.Remove(id)
	if err != nil {
		slog.Error("Failed to remove subscription", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *Handler) GetAlerts(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), subscription.DefaultAlertsLimit, subscription.MaxAlertHistory)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	alerts, err := h.deps.Subscriptions.RecentAlerts(limit)
	if err != nil {
		slog.Error("Failed to load alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *Handler) GetFeed(c *gin.Context) {
	category := c.Param("category")
	if !slices.Contains(feed.ReportCategories, category) {
		c.Status(http.StatusNotFound)
		return
	}

	limit := 0
	if cfg, err := h.deps.ConfigCache.Get(); err == nil {
		limit = cfg.Settings.ItemsPerCategory
	}

	items, err := h.engine.Find(query.Query{Category: category, Ordering: query.ByRecency, Limit: limit})
	if err != nil {
		slog.Error("Query failed", "category", category, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := report.RSS(category, items, h.baseURL+"/feeds/"+category, h.version)
	if err != nil {
		slog.Error("RSS generation error", "category", category, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	c.Header("X-Feed-Category", category)

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetLatestReport(c *gin.Context) {
	path, content, err := h.reports.Latest()
	if errors.Is(err, report.ErrNoReport) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report generated yet"})
		return
	}
	if err != nil {
		slog.Error("Failed to load report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.Header("X-Report-Path", path)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

func (h *Handler) PostCollect(c *gin.Context) {
	h.enqueue(c, tasks.NewCollectTask(tasks.TriggerAPI, h.deps))
}

func (h *Handler) PostReloadConfig(c *gin.Context) {
	h.enqueue(c, tasks.NewReloadConfigTask(tasks.TriggerAPI, h.deps.ConfigCache))
}

func (h *Handler) enqueue(c *gin.Context, task tasks.TaskInterface) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler is not running"})
		return
	}

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing task", "type", string(task.GetType()), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.GetID(),
			"type": task.GetType(),
		},
	})
}

func parseLimit(value string, fallback, max int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, errors.New("invalid limit")
	}
	return min(limit, max), nil
}
