// Package playlist maintains user playlists: ordered track references
// with a dense position rank, persisted as one collection under the
// "playlists" key of the playlist document store.
//
// A playlist owns its cover asset. Creating a playlist with a cover
// stages the normalized image and commits it only after the collection is
// durably saved; deleting the playlist removes the asset best-effort.
package playlist
