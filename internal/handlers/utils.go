package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"music-vault/internal/library"
	"music-vault/internal/logging"
	"music-vault/internal/playlist"
	"music-vault/internal/settings"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding errors are logged; there is nothing left to send the client.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logging.Error("failed to encode JSON error response: %v", err)
	}
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string) {
	writeJSON(w, map[string]string{"status": status})
}

// writeError maps adapter errors onto HTTP status codes. The body always
// carries the error text; the GUI shows it verbatim.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playlist.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, settings.ErrNotConfigured):
		writeJSONError(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, library.ErrCopyFailed):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeBody decodes a JSON request body into out.
func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
