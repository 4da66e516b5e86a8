package handlers

import (
	"errors"
	"net/http"

	"music-vault/internal/filesystem"
	"music-vault/internal/settings"
)

// GetMusicFolder returns the configured music folder, or a null path when
// none has been chosen yet.
func (h *Handlers) GetMusicFolder(w http.ResponseWriter, _ *http.Request) {
	folder, err := h.settings.MusicFolder()
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			writeJSON(w, map[string]interface{}{"path": nil})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"path": folder})
}

// SetMusicFolder persists the music folder chosen in the GUI's folder
// picker. The picker dialog itself runs in the shell; this endpoint only
// receives the resolved path.
func (h *Handlers) SetMusicFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path must not be empty", http.StatusBadRequest)
		return
	}

	if err := h.settings.SetMusicFolder(req.Path); err != nil {
		writeError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// GetMusicFolderSize reports the recursive size of the music folder as a
// human-readable string.
func (h *Handlers) GetMusicFolderSize(w http.ResponseWriter, _ *http.Request) {
	folder, err := h.settings.MusicFolder()
	if err != nil {
		writeError(w, err)
		return
	}

	total := filesystem.FolderSize(folder)
	writeJSON(w, map[string]string{"size": filesystem.FormatSize(total)})
}
