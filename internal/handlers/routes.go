package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
)

// Router registers every route of the service.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Pages
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/bookmarklet.html", h.Bookmarklet).Methods("GET")
	r.Handle("/ws", h.hub).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods("POST")
	api.HandleFunc("/playlists/selected", h.RemoveSelected).Methods("DELETE")
	api.HandleFunc("/playlists/{id}/select", h.SelectPlaylist).Methods("POST")
	api.HandleFunc("/playlists/{id}", h.UpdatePlaylist).Methods("PATCH")
	api.HandleFunc("/playlists/{id}/tracks/{index:[0-9]+}", h.RemoveTrack).Methods("DELETE")
	api.HandleFunc("/tracks", h.AddTrack).Methods("POST")

	// Static files
	static, err := fs.Sub(staticFS, "web/static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return r
}
