// Package filesystem provides the raw file operations behind the music
// vault: ingesting audio files into the managed folder, best-effort
// removal of derived assets, and sizing the managed folder for display.
package filesystem
