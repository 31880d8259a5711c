package handlers

import (
	"context"
	"embed"
	"html/template"
	"time"

	"playlist-manager/internal/app"
	"playlist-manager/internal/live"
)

//go:embed web/templates/*.html
var templateFS embed.FS

//go:embed web/static
var staticFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "web/templates/*.html"))

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	app       *app.App
	hub       *live.Hub
	db        Pinger
	startTime time.Time
}

func New(a *app.App, hub *live.Hub, db Pinger) *Handlers {
	return &Handlers{
		app:       a,
		hub:       hub,
		db:        db,
		startTime: time.Now(),
	}
}
