package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lysyi3m/stellarpulse/app/cfg"
	"github.com/lysyi3m/stellarpulse/app/config"
	"github.com/lysyi3m/stellarpulse/app/database"
	"github.com/lysyi3m/stellarpulse/app/query"
	"github.com/lysyi3m/stellarpulse/app/sources"
	"github.com/lysyi3m/stellarpulse/app/subscription"
	"github.com/lysyi3m/stellarpulse/app/tasks"
)

// application holds the wired collaborators shared by all commands.
type application struct {
	cfg    *cfg.Cfg
	deps   tasks.Dependencies
	engine *query.Engine
	port   string
	closer []func() error
}

func newApplication() (*application, error) {
	appCfg := cfg.Get()

	configCache := config.NewCache(appCfg.ConfigFile)
	if err := configCache.Run(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	sourcesCfg, err := configCache.Get()
	if err != nil {
		return nil, err
	}

	store, err := database.NewStore(database.StoreOptions{
		Kind:      appCfg.Store,
		DataDir:   appCfg.DataDir,
		RedisAddr: appCfg.RedisAddr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", appCfg.Store, err)
	}

	app := &application{cfg: appCfg, closer: []func() error{store.Close}}

	sessionCache, err := app.openSessionCache(store)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.port = cmp.Or(appCfg.Port, strconv.Itoa(sourcesCfg.Settings.WebPort))
	items := database.NewItemRepository(store, sourcesCfg.Settings.MaxItems)

	app.deps = tasks.Dependencies{
		ConfigCache:   configCache,
		Fetcher:       sources.NewFetcher(&http.Client{Timeout: 60 * time.Second}, appCfg.UserAgent),
		Items:         items,
		Subscriptions: subscription.NewManager(database.NewSubscriptionRepository(store)),
		ReportsDir:    appCfg.ReportsDir,
		WebURL:        app.webURL(),
	}
	app.engine = query.NewEngine(items, sessionCache)

	slog.Debug("Application initialized",
		"store", appCfg.Store,
		"data_dir", appCfg.DataDir,
		"cache_file", appCfg.CacheFile,
		"reports_dir", appCfg.ReportsDir)

	return app, nil
}

// openSessionCache keeps the last query result at exactly the configured
// cache file for the JSON store and inside the shared store otherwise.
func (a *application) openSessionCache(store database.DocumentStore) (*database.SessionRepository, error) {
	if a.cfg.Store != "" && a.cfg.Store != database.StoreJSON {
		return database.NewSessionRepository(store, database.SessionKey), nil
	}

	cacheStore, err := database.NewFileStoreWithExt(filepath.Dir(a.cfg.CacheFile), "")
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}
	a.closer = append(a.closer, cacheStore.Close)

	return database.NewSessionRepository(cacheStore, filepath.Base(a.cfg.CacheFile)), nil
}

func (a *application) webURL() string {
	if a.cfg.BaseUrl != "" {
		return strings.TrimSuffix(a.cfg.BaseUrl, "/")
	}
	return "http://localhost:" + a.port
}

func (a *application) Close() {
	for _, closeFn := range a.closer {
		if err := closeFn(); err != nil {
			slog.Warn("Failed to close store", "error", err)
		}
	}
}
