package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lysyi3m/stellarpulse/app/api"
	"github.com/lysyi3m/stellarpulse/app/query"
	"github.com/lysyi3m/stellarpulse/app/subscription"
	"github.com/lysyi3m/stellarpulse/app/tasks"
)

type CollectCommand struct{}

func (c *CollectCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task := tasks.NewCollectTask(tasks.TriggerCLI, app.deps)
	task.Start()
	if err := task.Execute(ctx); err != nil {
		return err
	}

	result := task.Result()
	if result.ReportPath != "" {
		slog.Info("Report written", "path", result.ReportPath)
	}
	fmt.Println(result.Digest)

	return nil
}

type ServeCommand struct{}

func (c *ServeCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	slog.Info("Starting StellarPulse server", "version", app.cfg.Version)

	scheduler := tasks.NewScheduler(app.deps, time.Duration(app.cfg.SchedulerInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(app.deps, app.engine, scheduler, app.deps.WebURL, app.cfg.Version)
	server := api.NewServer(handler, app.cfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + app.port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", app.port, "url", app.deps.WebURL)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serveErr = <-serverErrChan:
		slog.Error("Server error", "error", serveErr)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return serveErr
}

type ChatCommand struct {
	Args struct {
		Message []string `positional-arg-name:"message" required:"1"`
	} `positional-args:"yes"`
}

func (c *ChatCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	chat := query.NewChat(app.engine)
	fmt.Println(chat.Reply(strings.Join(c.Args.Message, " ")))

	return nil
}

type SubscribeCommand struct {
	Add    SubscribeAddCommand    `command:"add" description:"Subscribe to a keyword pattern"`
	List   SubscribeListCommand   `command:"list" description:"List subscriptions"`
	Remove SubscribeRemoveCommand `command:"remove" description:"Remove a subscription by id"`
	Alerts SubscribeAlertsCommand `command:"alerts" description:"Show recent alerts"`
}

type SubscribeAddCommand struct {
	Categories []string `short:"c" long:"category" description:"Category tag (repeatable, default: ai, robotics, space)"`
	NoNotify   bool     `long:"no-notify" description:"Record matches without notification"`
	Args       struct {
		Keyword string `positional-arg-name:"keyword" required:"yes"`
	} `positional-args:"yes"`
}

func (c *SubscribeAddCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	sub, err := app.deps.Subscriptions.Add(c.Args.Keyword, c.Categories, !c.NoNotify)
	if err != nil {
		return err
	}

	fmt.Printf("✅ 已订阅: %s (%s)\n", sub.Keyword, sub.ID)
	return nil
}

type SubscribeListCommand struct{}

func (c *SubscribeListCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	subscriptions, err := app.deps.Subscriptions.List()
	if err != nil {
		return err
	}

	fmt.Print(formatSubscriptions(subscriptions))
	return nil
}

type SubscribeRemoveCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *SubscribeRemoveCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	removed, err := app.deps.Subscriptions.Remove(c.Args.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("subscription %s not found", c.Args.ID)
	}

	fmt.Printf("🗑️ 已取消订阅: %s\n", c.Args.ID)
	return nil
}

type SubscribeAlertsCommand struct {
	Limit int `short:"n" long:"limit" default:"20" description:"Number of alerts to show"`
}

func (c *SubscribeAlertsCommand) Execute(args []string) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	alerts, err := app.deps.Subscriptions.RecentAlerts(c.Limit)
	if err != nil {
		return err
	}

	fmt.Print(formatAlerts(alerts))
	return nil
}

func formatSubscriptions(subscriptions []subscription.Subscription) string {
	if len(subscriptions) == 0 {
		return "📭 暂无订阅\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 订阅列表 (%d)\n\n", len(subscriptions))
	for _, sub := range subscriptions {
		fmt.Fprintf(&b, "%s  %s  [%s]  命中 %d 次\n", sub.ID, sub.Keyword, strings.Join(sub.Categories, ", "), sub.MatchCount)
	}
	return b.String()
}

func formatAlerts(alerts []subscription.Alert) string {
	if len(alerts) == 0 {
		return "📭 暂无提醒\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 最近提醒 (%d)\n\n", len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(&b, "%s  [%s] %s\n    %s\n", alert.Time.Local().Format("2006-01-02 15:04"), alert.Keyword, alert.Title, alert.Link)
	}
	return b.String()
}
