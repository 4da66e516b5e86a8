// Package library maintains the flat list of tracks in the music library,
// persisted under the "songs" key of the library document store.
package library

import (
	"errors"
	"fmt"
	"path/filepath"

	"music-vault/internal/audio"
	"music-vault/internal/filesystem"
	"music-vault/internal/logging"
	"music-vault/internal/settings"
	"music-vault/internal/store"
)

// ErrCopyFailed indicates the source audio file could not be copied into
// the music folder. A failed copy aborts ingestion before any store
// mutation.
var ErrCopyFailed = errors.New("cannot copy audio file")

// Track is one entry in the music library. A track is identified by its
// path inside the music folder; there is no separate id.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration string `json:"duration"`
	Path     string `json:"path"`
}

const songsKey = "songs"

// Store is the library adapter. Every operation reloads the document from
// disk, applies one mutation, and writes the whole collection back.
type Store struct {
	docs     *store.Store
	settings *settings.Service
	probe    func(string) (string, error)
}

// New returns a library adapter over the given document store.
func New(docs *store.Store, cfg *settings.Service) *Store {
	return &Store{
		docs:     docs,
		settings: cfg,
		probe:    audio.ProbeDuration,
	}
}

// Load returns every track in the library in ingestion order. An absent
// or malformed collection yields an empty slice.
func (s *Store) Load() ([]Track, error) {
	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return nil, err
	}
	return s.tracks(), nil
}

// tracks reads the songs collection from the loaded document. The caller
// must hold the store lock.
func (s *Store) tracks() []Track {
	var tracks []Track
	if !s.docs.Get(songsKey, &tracks) {
		return []Track{}
	}
	return tracks
}

// Ingest copies the source file into the configured music folder under
// its original name (an existing file of the same name is overwritten),
// probes its duration best-effort, and appends the resulting track to the
// library. The returned track's path points at the stored copy, not the
// source.
func (s *Store) Ingest(title, artist, sourcePath string) (Track, error) {
	folder, err := s.settings.MusicFolder()
	if err != nil {
		return Track{}, err
	}

	fileName := filepath.Base(sourcePath)
	if fileName == "." || fileName == string(filepath.Separator) {
		return Track{}, fmt.Errorf("%w: no file name in %q", ErrCopyFailed, sourcePath)
	}
	destPath := filepath.Join(folder, fileName)

	if err := filesystem.CopyFile(sourcePath, destPath); err != nil {
		return Track{}, fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}

	duration, err := s.probe(destPath)
	if err != nil {
		// Duration is an enrichment, not a correctness requirement.
		logging.Warn("library: could not probe duration of %s: %v", destPath, err)
		duration = "00:00"
	}

	track := Track{
		Title:    title,
		Artist:   artist,
		Duration: duration,
		Path:     destPath,
	}

	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return Track{}, err
	}
	tracks := append(s.tracks(), track)
	if err := s.docs.Set(songsKey, tracks); err != nil {
		return Track{}, err
	}
	if err := s.docs.Save(); err != nil {
		return Track{}, err
	}

	logging.Info("library: ingested %q by %q as %s", title, artist, destPath)
	return track, nil
}
