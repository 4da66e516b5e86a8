package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"music-vault/internal/logging"
	"music-vault/internal/metrics"
)

// Store is a single JSON document persisted as one file on disk. Keys map
// to arbitrary JSON values; the whole document is rewritten on every Save.
type Store struct {
	path string
	name string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open returns a handle to the document at path. The file is not read
// until Load is called; a missing file behaves as an empty document.
func Open(path string) *Store {
	return &Store{
		path: path,
		name: filepath.Base(path),
		data: make(map[string]json.RawMessage),
	}
}

// Path returns the on-disk location of the document.
func (s *Store) Path() string {
	return s.path
}

// Lock acquires the store's read-modify-write lock. Callers must hold it
// from Load through Save so a stale in-memory snapshot is never written
// over a newer one.
func (s *Store) Lock() {
	s.mu.Lock()
}

// Unlock releases the read-modify-write lock.
func (s *Store) Unlock() {
	s.mu.Unlock()
}

// Load re-reads the document from disk, replacing the in-memory state.
// A missing file yields an empty document. A file that is not a valid
// JSON object also yields an empty document: the store is the source of
// truth and a corrupt document is dropped wholesale, never half-parsed.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.data = make(map[string]json.RawMessage)
			return nil
		}
		return fmt.Errorf("reading %s: %w", s.name, err)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &doc); err != nil {
		logging.Warn("store %s: malformed document, starting empty: %v", s.name, err)
		s.data = make(map[string]json.RawMessage)
		return nil
	}
	s.data = doc
	return nil
}

// Get decodes the value under key into out. It returns false when the key
// is absent or its value does not decode into out; the caller falls back
// to a zero value in both cases.
func (s *Store) Get(key string, out interface{}) bool {
	raw, ok := s.data[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logging.Warn("store %s: dropping malformed value for %q: %v", s.name, key, err)
		return false
	}
	return true
}

// Set stores v under key in the in-memory document. The change is not
// durable until Save.
func (s *Store) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q for %s: %w", key, s.name, err)
	}
	s.data[key] = raw
	return nil
}

// Save writes the document to disk. The content goes to a temporary file
// in the same directory first and is renamed into place, so a crash mid
// write never leaves a truncated document behind.
func (s *Store) Save() error {
	start := time.Now()
	err := s.save()
	metrics.ObserveStoreSave(s.name, time.Since(start), err)
	return err
}

func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.name, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, s.name+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", s.name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", s.name, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.name, err)
	}

	logging.Debug("store %s: saved %d bytes", s.name, len(raw))
	return nil
}
