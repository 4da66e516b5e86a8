// Package media normalizes user-supplied cover art into the canonical
// stored form: a 500x500 WebP file in the managed music folder.
//
// Decoding tries libvips first when it is available (shrink-on-load keeps
// memory bounded for huge sources) and falls back to pure-Go decoding.
// The normalized file is staged next to its final location and only
// renamed into place once the owning playlist has been durably saved, so
// a failed store write never strands a cover on disk.
package media
