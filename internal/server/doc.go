// Package server exposes the action dispatcher over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a wrong method gets a 405.
//
// # Routes
//
//	POST /api/ytm        → one dispatcher action, JSON in and out
//	GET  /api/runs       → recorded collection runs (when a repository is configured)
//	GET  /api/runs/{id}  → one run with its tracks
//	GET  /health         → liveness probe
//
// Failures use the envelope {"error": message}: 400 for caller input problems, 500 for everything else.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
