// Package settings persists application settings, currently just the
// managed music folder path chosen by the user.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	"music-vault/internal/logging"
	"music-vault/internal/store"
)

// ErrNotConfigured is returned by operations that need the music folder
// before one has been chosen.
var ErrNotConfigured = errors.New("music folder is not configured")

const musicFolderKey = "music_folder"

// Service reads and writes the settings document. The music folder is
// re-read from the store on every call so a change made by one operation
// is immediately visible to the next; nothing is cached in memory.
type Service struct {
	docs *store.Store
}

// New returns a settings service backed by the given document store.
func New(docs *store.Store) *Service {
	return &Service{docs: docs}
}

// MusicFolder returns the configured music folder path, or
// ErrNotConfigured when none has been set.
func (s *Service) MusicFolder() (string, error) {
	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return "", err
	}

	var folder string
	if !s.docs.Get(musicFolderKey, &folder) || folder == "" {
		return "", ErrNotConfigured
	}
	return folder, nil
}

// SetMusicFolder persists the chosen music folder path. The folder picker
// itself lives in the GUI shell; by the time this is called the path has
// already been resolved by the user.
func (s *Service) SetMusicFolder(path string) error {
	if path == "" {
		return fmt.Errorf("music folder path must not be empty")
	}
	path = filepath.Clean(path)

	s.docs.Lock()
	defer s.docs.Unlock()

	if err := s.docs.Load(); err != nil {
		return err
	}
	if err := s.docs.Set(musicFolderKey, path); err != nil {
		return err
	}
	if err := s.docs.Save(); err != nil {
		return err
	}

	logging.Info("settings: music folder set to %s", path)
	return nil
}
