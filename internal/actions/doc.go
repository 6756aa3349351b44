// Package actions is the public entry point to the YouTube Music client.
//
// A [Request] names one action and carries the caller's cookies, preferred account index and action parameters.
// [Dispatcher.Dispatch] validates the parameters, derives credentials once, runs exactly one operation through a
// [Library] and returns the action's response envelope:
//
//   - verify : probes the library landing page and reports the account index that answered
//   - list_playlists : liked playlists, with "Liked Music" (LM) always first
//   - get_playlist_tracks : paginated tracks of a playlist (default LM) with diagnostics
//   - search : video id of the first result, or null
//   - like, remove_like : rate or unrate a video
//
// Invalid input is reported as a [shared.ValidationError]; everything else is an execution failure.
// Callers map the two to client and server errors respectively.
package actions
