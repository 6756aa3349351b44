// Package models defines the domain entities shared by the extraction core, the run history store, and the outer surfaces.
//
// The package contains two categories of types:
//
// 1. Extraction results: values produced by one pass over the YouTube Music API
//   - [Track] : one playable item (title, artist, optional video id)
//   - [Playlist] : a library playlist as shown in the liked playlists grid
//   - [Diagnostics] : per-renderer counters, reported totals and the stop reason of a collection run
//   - [CollectResult] : tracks plus page count, truncation flag and diagnostics
//   - [PlaylistExport] : a playlist with its collected tracks, as written by the exporters
//
// 2. Persistent entities: database-backed records of past collection runs
//   - [Run] : one get_playlist_tracks invocation with its counters
//
// Persistent entities implement the [Model] interface providing ID, timestamps, and validation.
package models
