package playlist

import (
	"errors"
	"fmt"
	"path/filepath"

	"music-vault/internal/filesystem"
	"music-vault/internal/logging"
	"music-vault/internal/media"
	"music-vault/internal/settings"
	"music-vault/internal/store"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no playlist carries the requested id.
var ErrNotFound = errors.New("playlist not found")

// Entry references one track inside a playlist. Position is a zero-based
// rank: after any mutating operation the entries, sorted by position, are
// the presentation order. Append does not renumber what was already
// there; it only guarantees the new entries continue the sequence from
// the pre-append length.
type Entry struct {
	Position  uint32 `json:"position"`
	TrackPath string `json:"song_path"`
}

// Playlist is a named, ordered set of track references. Cover, when set,
// is the file name of the owned cover asset relative to the music folder.
type Playlist struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Cover   *string `json:"cover_image_path"`
	Entries []Entry `json:"songs"`
}

const playlistsKey = "playlists"

// Store is the playlist adapter. Like the library it has no in-memory
// state: each operation reloads the full collection, applies one
// mutation, and writes the collection back under the store lock.
type Store struct {
	docs     *store.Store
	settings *settings.Service
}

// New returns a playlist adapter over the given document store.
func New(docs *store.Store, cfg *settings.Service) *Store {
	return &Store{docs: docs, settings: cfg}
}

// List returns every playlist in creation order.
func (s *Store) List() ([]Playlist, error) {
	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return nil, err
	}
	return s.playlists(), nil
}

// Get returns the playlist with the given id.
func (s *Store) Get(id string) (Playlist, error) {
	all, err := s.List()
	if err != nil {
		return Playlist{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Playlist{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create builds a new playlist from the given track paths, in input
// order, and persists it. When coverSourcePath is non-empty the source
// image is normalized first and a failure there aborts the whole create;
// the stored cover file only becomes addressable after the collection has
// been durably saved, so a failed save strands nothing on disk.
func (s *Store) Create(name, coverSourcePath string, trackPaths []string) (Playlist, error) {
	folder, err := s.settings.MusicFolder()
	if err != nil {
		return Playlist{}, err
	}

	var staged *media.StagedCover
	var cover *string
	if coverSourcePath != "" {
		staged, err = media.StageCover(coverSourcePath, folder)
		if err != nil {
			return Playlist{}, err
		}
		cover = &staged.Name
	}

	p := Playlist{
		ID:      uuid.NewString(),
		Name:    name,
		Cover:   cover,
		Entries: numberEntries(trackPaths, 0),
	}

	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		if staged != nil {
			staged.Discard()
		}
		return Playlist{}, err
	}
	all := append(s.playlists(), p)
	if err := s.docs.Set(playlistsKey, all); err != nil {
		if staged != nil {
			staged.Discard()
		}
		return Playlist{}, err
	}
	if err := s.docs.Save(); err != nil {
		if staged != nil {
			staged.Discard()
		}
		return Playlist{}, err
	}

	if staged != nil {
		if err := staged.Commit(); err != nil {
			// The playlist is already durable; a failed rename leaves it
			// referencing a cover that never appeared. Log and carry on,
			// the GUI falls back to its placeholder art.
			logging.Error("playlist: failed to commit cover for %s: %v", p.ID, err)
		}
	}

	logging.Info("playlist: created %q (%s) with %d tracks", name, p.ID, len(p.Entries))
	return p, nil
}

// ReplaceEntries overwrites the playlist's entries with the given track
// paths, renumbered densely from zero in the given order. This is the
// canonical reorder / set-contents operation; it never merges.
func (s *Store) ReplaceEntries(id string, trackPaths []string) error {
	return s.mutate(id, func(p *Playlist) {
		p.Entries = numberEntries(trackPaths, 0)
	})
}

// AppendEntries concatenates the given track paths to the end of the
// playlist. New entries are numbered contiguously starting at the current
// entry count; existing entries keep their positions untouched, gaps and
// all.
func (s *Store) AppendEntries(id string, trackPaths []string) error {
	return s.mutate(id, func(p *Playlist) {
		p.Entries = append(p.Entries, numberEntries(trackPaths, uint32(len(p.Entries)))...)
	})
}

// Delete removes the playlist and, when it owns a cover asset and a music
// folder is configured, deletes the asset file. Asset removal is
// best-effort cleanup: a failure is logged and the playlist is deleted
// regardless.
func (s *Store) Delete(id string) error {
	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return err
	}

	all := s.playlists()
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if cover := all[idx].Cover; cover != nil && *cover != "" {
		if folder, err := s.settings.MusicFolder(); err == nil {
			assetPath := filepath.Join(folder, *cover)
			if err := filesystem.RemoveIfExists(assetPath); err != nil {
				logging.Warn("playlist: failed to delete cover asset %s: %v", assetPath, err)
			} else {
				logging.Debug("playlist: deleted cover asset %s", assetPath)
			}
		}
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := s.docs.Set(playlistsKey, all); err != nil {
		return err
	}
	if err := s.docs.Save(); err != nil {
		return err
	}

	logging.Info("playlist: deleted %s", id)
	return nil
}

// mutate runs fn against the playlist with the given id inside one
// read-modify-write cycle.
func (s *Store) mutate(id string, fn func(*Playlist)) error {
	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return err
	}

	all := s.playlists()
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	fn(&all[idx])

	if err := s.docs.Set(playlistsKey, all); err != nil {
		return err
	}
	return s.docs.Save()
}

// playlists reads the collection from the loaded document. The caller
// must hold the store lock.
func (s *Store) playlists() []Playlist {
	var all []Playlist
	if !s.docs.Get(playlistsKey, &all) {
		return []Playlist{}
	}
	return all
}

// numberEntries zips track paths with positions start, start+1, ... in
// input order.
func numberEntries(trackPaths []string, start uint32) []Entry {
	entries := make([]Entry, 0, len(trackPaths))
	for i, path := range trackPaths {
		entries = append(entries, Entry{
			Position:  start + uint32(i),
			TrackPath: path,
		})
	}
	return entries
}
