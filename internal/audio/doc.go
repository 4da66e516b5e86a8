// Package audio probes the playable duration of audio files in the
// library. Duration is frame count divided by sample rate; when either is
// unknown the probe degrades to zero rather than failing, because a
// missing duration must never block ingestion.
package audio
