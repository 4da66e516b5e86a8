// Package store implements the flat-file JSON document stores backing the
// music vault: one JSON object per file, mutated with a whole-document
// read-modify-write cycle.
//
// Each adapter holds the store lock for the full span of its
// load-mutate-save sequence, so two goroutines in this process cannot
// clobber each other's writes. A second *process* racing on the same file
// is not defended against; the application assumes a single active
// instance per data directory.
//
// Save is crash-safe: the document is written to a temporary file in the
// same directory and renamed over the previous version.
package store
