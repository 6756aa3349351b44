// Package extract reads tracks, playlists, continuation tokens and reported counts
// out of YouTube Music responses without relying on a fixed schema.
//
// Responses are decoded into generic values (map[string]any, []any, scalars) and
// searched with an iterative depth-first [Walk]. Renderer candidates are objects
// keyed by one of the known renderer names, or untyped objects that carry
// flexColumns together with playlistItemData or navigationEndpoint.
//
// Nothing in this package returns an error: a page with no usable data yields
// zero tracks and counters explaining why.
package extract
