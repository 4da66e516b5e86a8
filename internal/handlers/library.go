package handlers

import (
	"net/http"
)

// ListTracks returns the full music library in ingestion order.
func (h *Handlers) ListTracks(w http.ResponseWriter, _ *http.Request) {
	tracks, err := h.library.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, tracks)
}

// IngestTrack copies an audio file into the music folder and appends it
// to the library. The response is the stored track, whose path points at
// the managed copy.
func (h *Handlers) IngestTrack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Artist string `json:"artist"`
		Path   string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path must not be empty", http.StatusBadRequest)
		return
	}

	track, err := h.library.Ingest(req.Title, req.Artist, req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, track)
}
