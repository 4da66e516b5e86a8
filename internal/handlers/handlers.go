package handlers

import (
	"music-vault/internal/library"
	"music-vault/internal/playlist"
	"music-vault/internal/settings"
)

// Handlers bundles the store adapters behind the HTTP surface.
type Handlers struct {
	settings  *settings.Service
	library   *library.Store
	playlists *playlist.Store
}

// New wires the handlers to their adapters.
func New(cfg *settings.Service, lib *library.Store, pls *playlist.Store) *Handlers {
	return &Handlers{
		settings:  cfg,
		library:   lib,
		playlists: pls,
	}
}
