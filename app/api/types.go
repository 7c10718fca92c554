package api

import (
	"github.com/lysyi3m/stellarpulse/app/query"
	"github.com/lysyi3m/stellarpulse/app/report"
	"github.com/lysyi3m/stellarpulse/app/tasks"
)

type ReportStoreInterface interface {
	Latest() (string, string, error)
}

var _ ReportStoreInterface = (*report.Generator)(nil)

type Handler struct {
	deps      tasks.Dependencies
	engine    *query.Engine
	chat      *query.Chat
	reports   ReportStoreInterface
	scheduler tasks.TaskSchedulerInterface
	baseURL   string
	version   string
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type subscriptionRequest struct {
	Keyword    string   `json:"keyword" binding:"required"`
	Categories []string `json:"categories"`
	Notify     *bool    `json:"notify"`
}
