// Package handlers implements the HTTP surface of the music vault
// backend. Each handler is a stateless entry point: it opens the relevant
// document store fresh, applies at most one mutation, and reports any
// failure to the caller as a human-readable error string.
package handlers
