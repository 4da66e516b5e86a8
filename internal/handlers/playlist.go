package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ListPlaylists returns all playlists in creation order.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, _ *http.Request) {
	playlists, err := h.playlists.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, playlists)
}

// GetPlaylist returns one playlist by id.
func (h *Handlers) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.playlists.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, p)
}

// CreatePlaylist creates a playlist from the given track paths, with an
// optional cover image that is normalized into the music folder.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string   `json:"name"`
		CoverPath  string   `json:"cover_path"`
		TrackPaths []string `json:"track_paths"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSONError(w, "name must not be empty", http.StatusBadRequest)
		return
	}

	p, err := h.playlists.Create(req.Name, req.CoverPath, req.TrackPaths)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, p)
}

// ReplacePlaylistTracks overwrites the playlist's contents with the given
// track paths in order. This is the reorder / set-contents operation.
func (h *Handlers) ReplacePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		TrackPaths []string `json:"track_paths"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.playlists.ReplaceEntries(id, req.TrackPaths); err != nil {
		writeError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// AppendPlaylistTracks appends the given track paths to the playlist.
func (h *Handlers) AppendPlaylistTracks(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		TrackPaths []string `json:"track_paths"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.playlists.AppendEntries(id, req.TrackPaths); err != nil {
		writeError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// DeletePlaylist removes a playlist and its cover asset.
func (h *Handlers) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.playlists.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}
