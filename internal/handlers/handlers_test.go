package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"music-vault/internal/library"
	"music-vault/internal/playlist"
	"music-vault/internal/settings"
	"music-vault/internal/store"

	"github.com/gorilla/mux"
)

type testServer struct {
	router *mux.Router
	music  string
}

// newTestServer wires handlers against temp-dir stores with a configured
// music folder, mirroring the production routes.
func newTestServer(t *testing.T, configureFolder bool) *testServer {
	t.Helper()

	dataDir := t.TempDir()
	cfg := settings.New(store.Open(filepath.Join(dataDir, "settings.json")))
	lib := library.New(store.Open(filepath.Join(dataDir, "library.json")), cfg)
	pls := playlist.New(store.Open(filepath.Join(dataDir, "playlists.json")), cfg)
	h := New(cfg, lib, pls)

	ts := &testServer{router: mux.NewRouter()}
	if configureFolder {
		ts.music = t.TempDir()
		if err := cfg.SetMusicFolder(ts.music); err != nil {
			t.Fatalf("SetMusicFolder failed: %v", err)
		}
	}

	r := ts.router
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/settings/music-folder", h.GetMusicFolder).Methods("GET")
	api.HandleFunc("/settings/music-folder", h.SetMusicFolder).Methods("PUT")
	api.HandleFunc("/settings/music-folder/size", h.GetMusicFolderSize).Methods("GET")
	api.HandleFunc("/library/tracks", h.ListTracks).Methods("GET")
	api.HandleFunc("/library/tracks", h.IngestTrack).Methods("POST")
	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods("POST")
	api.HandleFunc("/playlists/{id}", h.GetPlaylist).Methods("GET")
	api.HandleFunc("/playlists/{id}", h.DeletePlaylist).Methods("DELETE")
	api.HandleFunc("/playlists/{id}/tracks", h.ReplacePlaylistTracks).Methods("PUT")
	api.HandleFunc("/playlists/{id}/tracks", h.AppendPlaylistTracks).Methods("POST")

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	decodeInto(t, rec, &resp)
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want %q", resp.Status, "healthy")
	}
}

func TestMusicFolderLifecycle(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "GET", "/api/settings/music-folder", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var unset struct {
		Path *string `json:"path"`
	}
	decodeInto(t, rec, &unset)
	if unset.Path != nil {
		t.Errorf("Unconfigured folder path = %v, want null", *unset.Path)
	}

	folder := t.TempDir()
	rec = ts.do(t, "PUT", "/api/settings/music-folder", map[string]string{"path": folder})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, "GET", "/api/settings/music-folder", nil)
	var set struct {
		Path string `json:"path"`
	}
	decodeInto(t, rec, &set)
	if set.Path != folder {
		t.Errorf("path = %q, want %q", set.Path, folder)
	}
}

func TestSetMusicFolderRejectsEmptyBody(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "PUT", "/api/settings/music-folder", map[string]string{"path": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestMusicFolderSizeNotConfigured(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "GET", "/api/settings/music-folder/size", nil)
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Status = %d, want 412", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeInto(t, rec, &resp)
	if resp.Error == "" {
		t.Error("Error response should carry a descriptive string")
	}
}

func TestMusicFolderSize(t *testing.T) {
	ts := newTestServer(t, true)

	for name, size := range map[string]int{"a.mp3": 500, "b.mp3": 1500, "c.mp3": 1000000} {
		if err := os.WriteFile(filepath.Join(ts.music, name), make([]byte, size), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	rec := ts.do(t, "GET", "/api/settings/music-folder/size", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Size string `json:"size"`
	}
	decodeInto(t, rec, &resp)
	if resp.Size != "978.52 KB" {
		t.Errorf("size = %q, want %q", resp.Size, "978.52 KB")
	}
}

func TestListTracksEmpty(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, "GET", "/api/library/tracks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var tracks []library.Track
	decodeInto(t, rec, &tracks)
	if len(tracks) != 0 {
		t.Errorf("Expected empty library, got %d tracks", len(tracks))
	}
}

func TestIngestTrack(t *testing.T) {
	ts := newTestServer(t, true)

	src := filepath.Join(t.TempDir(), "tune.mp3")
	if err := os.WriteFile(src, []byte("fake audio"), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	rec := ts.do(t, "POST", "/api/library/tracks", map[string]string{
		"title": "Tune", "artist": "Someone", "path": src,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var track library.Track
	decodeInto(t, rec, &track)
	if track.Path != filepath.Join(ts.music, "tune.mp3") {
		t.Errorf("Track path = %q, want stored copy in music folder", track.Path)
	}

	rec = ts.do(t, "GET", "/api/library/tracks", nil)
	var tracks []library.Track
	decodeInto(t, rec, &tracks)
	if len(tracks) != 1 || tracks[0].Title != "Tune" {
		t.Errorf("Library after ingest = %+v", tracks)
	}
}

func TestIngestTrackRequiresConfiguredFolder(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "POST", "/api/library/tracks", map[string]string{
		"title": "Tune", "artist": "Someone", "path": "/tmp/whatever.mp3",
	})
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Status = %d, want 412", rec.Code)
	}
}

func TestIngestTrackMissingPath(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, "POST", "/api/library/tracks", map[string]string{"title": "NoPath"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestPlaylistLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, "POST", "/api/playlists", map[string]interface{}{
		"name":        "Road Trip",
		"track_paths": []string{"a", "b", "c"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created playlist.Playlist
	decodeInto(t, rec, &created)
	if created.ID == "" {
		t.Fatal("Created playlist has no id")
	}

	rec = ts.do(t, "GET", "/api/playlists/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Get status = %d", rec.Code)
	}
	var got playlist.Playlist
	decodeInto(t, rec, &got)
	if len(got.Entries) != 3 || got.Entries[2].TrackPath != "c" || got.Entries[2].Position != 2 {
		t.Errorf("Playlist entries = %+v", got.Entries)
	}

	rec = ts.do(t, "PUT", "/api/playlists/"+created.ID+"/tracks", map[string]interface{}{
		"track_paths": []string{"c", "a"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Replace status = %d", rec.Code)
	}

	rec = ts.do(t, "POST", "/api/playlists/"+created.ID+"/tracks", map[string]interface{}{
		"track_paths": []string{"d"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Append status = %d", rec.Code)
	}

	rec = ts.do(t, "GET", "/api/playlists/"+created.ID, nil)
	decodeInto(t, rec, &got)
	wantOrder := []string{"c", "a", "d"}
	for i, want := range wantOrder {
		if got.Entries[i].TrackPath != want || got.Entries[i].Position != uint32(i) {
			t.Errorf("Entry %d = %+v, want path %q position %d", i, got.Entries[i], want, i)
		}
	}

	rec = ts.do(t, "DELETE", "/api/playlists/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete status = %d", rec.Code)
	}

	rec = ts.do(t, "GET", "/api/playlists/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetUnknownPlaylistIs404(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, "GET", "/api/playlists/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeInto(t, rec, &resp)
	if resp.Error == "" {
		t.Error("404 response should carry a descriptive error string")
	}
}

func TestCreatePlaylistRequiresName(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, "POST", "/api/playlists", map[string]interface{}{
		"track_paths": []string{"a"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestCreatePlaylistNotConfigured(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, "POST", "/api/playlists", map[string]interface{}{
		"name": "Mix", "track_paths": []string{"a"},
	})
	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("Status = %d, want 412", rec.Code)
	}
}
