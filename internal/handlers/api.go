package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"playlist-manager/internal/app"

	"github.com/gorilla/mux"
)

const maxBodySize = 64 << 10

// ListPlaylists returns every playlist.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	all, err := h.app.Playlists(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatusCode(w, all, http.StatusOK)
}

// CreatePlaylist adds an untitled playlist and selects it.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	pl, err := h.app.CreatePlaylist(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatusCode(w, pl, http.StatusCreated)
}

// RemoveSelected deletes the selected playlist.
func (h *Handlers) RemoveSelected(w http.ResponseWriter, r *http.Request) {
	pl, err := h.app.RemoveSelected(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatusCode(w, pl, http.StatusOK)
}

// SelectPlaylist makes the playlist named in the path the selected one.
func (h *Handlers) SelectPlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.app.SelectPlaylist(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatus(w, "selected")
}

// UpdatePlaylist changes the title and/or the description of a playlist.
func (h *Handlers) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var u app.Update
	if !decodeBody(w, r, &u) {
		return
	}
	pl, err := h.app.UpdatePlaylist(r.Context(), mux.Vars(r)["id"], u)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatusCode(w, pl, http.StatusOK)
}

// AddTrackRequest is the body of POST /api/tracks.
type AddTrackRequest struct {
	URL string `json:"url"`
}

// AddTrack validates a track URL and appends it to the selected playlist.
func (h *Handlers) AddTrack(w http.ResponseWriter, r *http.Request) {
	var req AddTrackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pl, err := h.app.AddTrack(r.Context(), req.URL)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSONStatusCode(w, pl, http.StatusCreated)
}

// RemoveTrack removes the track at the index named in the path.
func (h *Handlers) RemoveTrack(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeJSONError(w, "invalid track index", http.StatusBadRequest)
		return
	}
	if err := h.app.RemoveTrack(r.Context(), vars["id"], index); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
