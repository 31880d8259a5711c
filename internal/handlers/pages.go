package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"playlist-manager/internal/app"
	"playlist-manager/internal/logging"
	"playlist-manager/internal/oembed"
	"playlist-manager/internal/view"
)

type indexPage struct {
	app.Snapshot
	Bookmarklet template.URL
}

type bookmarkletPage struct {
	Success bool
	Title   string
	Message string
}

// Index renders the main page from the current application state.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	snap, err := h.app.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "application unavailable", statusFor(err))
		return
	}

	page := indexPage{
		Snapshot:    snap,
		Bookmarklet: template.URL(app.Bookmarklet(baseURL(r))), // #nosec G203 -- built from the request host, percent-encoded
	}
	renderPage(w, "index.html", page, http.StatusOK)
}

// Bookmarklet handles the popup opened by the bookmarklet. The raw query
// string is the address of the page the user was looking at.
func (h *Handlers) Bookmarklet(w http.ResponseWriter, r *http.Request) {
	target := bookmarkletTarget(r.URL.RawQuery)

	page := bookmarkletPage{Message: view.ValidationMessage}
	status := http.StatusUnprocessableEntity

	if target != "" {
		title, err := h.app.AddFromBookmarklet(r.Context(), target)
		switch {
		case err == nil:
			page = bookmarkletPage{Success: true, Title: title}
			status = http.StatusOK
		case !errors.Is(err, oembed.ErrNotEmbeddable):
			logging.Warn("Bookmarklet could not add %s: %v", target, err)
			status = statusFor(err)
		}
	}
	renderPage(w, "bookmarklet.html", page, status)
}

// bookmarkletTarget decodes the query like the browser's decodeURI and
// trims it.
func bookmarkletTarget(rawQuery string) string {
	decoded, err := url.PathUnescape(rawQuery)
	if err != nil {
		decoded = rawQuery
	}
	return strings.TrimSpace(decoded)
}

// baseURL is the address the browser used to reach the app.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + "/"
}

func renderPage(w http.ResponseWriter, name string, data any, status int) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		logging.Error("failed to render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debug("failed to write %s: %v", name, err)
	}
}
