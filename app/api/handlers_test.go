package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/database"
	"github.com/lysyi3m/stellarpulse/app/feed"
	"github.com/lysyi3m/stellarpulse/app/query"
	"github.com/lysyi3m/stellarpulse/app/report"
	"github.com/lysyi3m/stellarpulse/app/subscription"
	"github.com/lysyi3m/stellarpulse/app/tasks"
)

const testAPIKey = "secret"

type recordingScheduler struct {
	enqueued []tasks.TaskInterface
}

func (s *recordingScheduler) Start() {}
func (s *recordingScheduler) Stop()  {}
func (s *recordingScheduler) EnqueueTask(task tasks.TaskInterface) error {
	s.enqueued = append(s.enqueued, task)
	return nil
}

func testItem(title, link, source string, category string, importance float64, fetchedAt time.Time) feed.Item {
	return feed.Item{
		RawItem: feed.RawItem{
			Title:     title,
			Link:      link,
			Summary:   "summary of " + title,
			Source:    source,
			FetchedAt: fetchedAt,
		},
		Categories: []string{category},
		AISummary:  "ai summary of " + title,
		Keywords:   []string{"test"},
		Importance: importance,
	}
}

func setupTestServer(t *testing.T, scheduler tasks.TaskSchedulerInterface) (*gin.Engine, tasks.Dependencies) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "sources.yml")
	if err := os.WriteFile(configPath, []byte("keywords:\n  ai: [\"openai\"]\nsettings:\n  items_per_category: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configCache := config.NewCache(configPath)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	store, err := database.NewFileStore(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}

	deps := tasks.Dependencies{
		ConfigCache:   configCache,
		Items:         database.NewItemRepository(store, 0),
		Subscriptions: subscription.NewManager(database.NewSubscriptionRepository(store)),
		ReportsDir:    filepath.Join(dir, "reports"),
	}

	base := time.Now().Add(-time.Hour)
	_, err = deps.Items.Append([]feed.Item{
		testItem("OpenAI ships GPT-5", "https://example.com/1", "Hacker News", feed.CategoryAI, 4, base),
		testItem("Robot arm learns to cook", "https://example.com/2", "Reddit", feed.CategoryRobotics, 1, base.Add(10*time.Minute)),
		testItem("New LLM benchmark", "https://example.com/3", "Hacker News", feed.CategoryAI, 2, base.Add(20*time.Minute)),
		testItem("Older AI news", "https://example.com/4", "arXiv", feed.CategoryAI, 3, base.Add(-time.Hour)),
	}, base)
	if err != nil {
		t.Fatal(err)
	}

	engine := query.NewEngine(deps.Items, query.NewMemorySessionCache())
	handler := NewHandler(deps, engine, scheduler, "http://localhost:8080/", "1.0.0")

	return NewServer(handler, testAPIKey), deps
}

func doRequest(router http.Handler, method, path string, body any, apiKey string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := decode(t, w); body["service"] != "StellarPulse" {
		t.Errorf("Expected service StellarPulse, got %v", body["service"])
	}

	w = doRequest(router, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := decode(t, w); body["items"] != float64(4) {
		t.Errorf("Expected 4 items, got %v", body["items"])
	}
}

func TestGetStats(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodGet, "/stats", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := decode(t, w)
	bySource := body["by_source"].(map[string]any)
	if bySource["Hacker News"] != float64(2) {
		t.Errorf("Expected 2 Hacker News items, got %v", bySource["Hacker News"])
	}
	byCategory := body["by_category"].(map[string]any)
	if byCategory[feed.CategoryAI] != float64(3) {
		t.Errorf("Expected 3 ai items, got %v", byCategory[feed.CategoryAI])
	}
}

func TestPostChat(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodPost, "/api/chat", gin.H{"message": "good morning"}, "")
	if body := decode(t, w); body["skip"] != true {
		t.Errorf("Expected skip for unrelated message, got %v", body)
	}

	w = doRequest(router, http.MethodPost, "/api/chat", gin.H{"message": "/hot"}, "")
	body := decode(t, w)
	reply, _ := body["reply"].(string)
	if !strings.Contains(reply, "OpenAI ships GPT-5") {
		t.Errorf("Expected hot list to contain top item, got %q", reply)
	}

	w = doRequest(router, http.MethodPost, "/api/chat", gin.H{"message": "1"}, "")
	body = decode(t, w)
	reply, _ = body["reply"].(string)
	if !strings.Contains(reply, "https://example.com/1") {
		t.Errorf("Expected detail of first hot item, got %q", reply)
	}

	w = doRequest(router, http.MethodPost, "/api/chat", gin.H{}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing message, got %d", w.Code)
	}
}

func TestGetItems(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	tests := []struct {
		name      string
		path      string
		status    int
		total     int
		firstLink string
	}{
		{"default recency", "/api/items", http.StatusOK, 4, "https://example.com/3"},
		{"by importance", "/api/items?order=importance&limit=2", http.StatusOK, 2, "https://example.com/1"},
		{"category filter", "/api/items?category=robotics", http.StatusOK, 1, "https://example.com/2"},
		{"text filter", "/api/items?q=benchmark", http.StatusOK, 1, "https://example.com/3"},
		{"bad order", "/api/items?order=random", http.StatusBadRequest, 0, ""},
		{"bad limit", "/api/items?limit=abc", http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, nil, "")
			if w.Code != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, w.Code)
			}
			if tt.status != http.StatusOK {
				return
			}

			body := decode(t, w)
			if body["total"] != float64(tt.total) {
				t.Errorf("Expected total %d, got %v", tt.total, body["total"])
			}
			items := body["items"].([]any)
			first := items[0].(map[string]any)
			if first["link"] != tt.firstLink {
				t.Errorf("Expected first link %s, got %v", tt.firstLink, first["link"])
			}
		})
	}
}

func TestSubscriptionEndpoints(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodPost, "/api/subscriptions", gin.H{"keyword": "GPT*"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", w.Code)
	}

	w = doRequest(router, http.MethodPost, "/api/subscriptions", gin.H{"keyword": "GPT*"}, "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong key, got %d", w.Code)
	}

	w = doRequest(router, http.MethodPost, "/api/subscriptions", gin.H{"keyword": "GPT*"}, testAPIKey)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	id, _ := created["id"].(string)
	if !strings.HasPrefix(id, "sub_") {
		t.Errorf("Expected id with sub_ prefix, got %q", id)
	}
	if categories := created["categories"].([]any); len(categories) != 3 {
		t.Errorf("Expected default categories, got %v", categories)
	}

	w = doRequest(router, http.MethodGet, "/api/subscriptions", nil, "")
	if body := decode(t, w); body["total"] != float64(1) {
		t.Errorf("Expected 1 subscription, got %v", body["total"])
	}

	w = doRequest(router, http.MethodDelete, "/api/subscriptions/sub_missing", nil, testAPIKey)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown id, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/subscriptions/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with bearer token, got %d", w.Code)
	}
}

func TestGetAlerts(t *testing.T) {
	router, deps := setupTestServer(t, nil)

	if _, err := deps.Subscriptions.Add("open*", nil, true); err != nil {
		t.Fatal(err)
	}
	items, _ := deps.Items.LoadItems()
	if _, err := deps.Subscriptions.CheckMatches(items); err != nil {
		t.Fatal(err)
	}

	w := doRequest(router, http.MethodGet, "/api/alerts?limit=5", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := decode(t, w); body["total"] != float64(1) {
		t.Errorf("Expected 1 alert, got %v", body["total"])
	}

	w = doRequest(router, http.MethodGet, "/api/alerts?limit=-1", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative limit, got %d", w.Code)
	}
}

func TestGetFeed(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodGet, "/feeds/ai", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("X-Feed-Items") != "2" {
		t.Errorf("Expected items_per_category limit of 2, got %s", w.Header().Get("X-Feed-Items"))
	}
	if !strings.Contains(w.Body.String(), "http://localhost:8080/feeds/ai") {
		t.Error("Expected feed self link")
	}

	w = doRequest(router, http.MethodGet, "/feeds/other", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown category, got %d", w.Code)
	}
}

func TestGetLatestReport(t *testing.T) {
	router, deps := setupTestServer(t, nil)

	w := doRequest(router, http.MethodGet, "/reports/latest", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 before any report, got %d", w.Code)
	}

	items, _ := deps.Items.LoadItems()
	if _, _, err := report.NewGenerator(deps.ReportsDir, 0, "").Run(items, time.Now()); err != nil {
		t.Fatal(err)
	}

	w = doRequest(router, http.MethodGet, "/reports/latest", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown") {
		t.Errorf("Expected markdown content type, got %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "OpenAI ships GPT-5") {
		t.Error("Expected report to contain stored item")
	}
}

func TestTaskEndpoints(t *testing.T) {
	router, _ := setupTestServer(t, nil)

	w := doRequest(router, http.MethodPost, "/api/collect", nil, testAPIKey)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 without scheduler, got %d", w.Code)
	}

	scheduler := &recordingScheduler{}
	router, _ = setupTestServer(t, scheduler)

	w = doRequest(router, http.MethodPost, "/api/collect", nil, testAPIKey)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", w.Code)
	}
	w = doRequest(router, http.MethodPost, "/api/reload", nil, testAPIKey)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", w.Code)
	}

	if len(scheduler.enqueued) != 2 {
		t.Fatalf("Expected 2 enqueued tasks, got %d", len(scheduler.enqueued))
	}
	if scheduler.enqueued[0].GetType() != tasks.TaskTypeCollect {
		t.Errorf("Expected collect task, got %s", scheduler.enqueued[0].GetType())
	}
	if scheduler.enqueued[1].GetType() != tasks.TaskTypeReloadConfig {
		t.Errorf("Expected reload task, got %s", scheduler.enqueued[1].GetType())
	}
}
