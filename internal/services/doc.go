// Package services implements the client for YouTube Music's private innertube API.
//
// # Credentials
//
// [ParseCredentials] cleans a browser cookie header and picks the session secret
// (__Secure-3PAPISID, __Secure-1PAPISID, SAPISID, APISID in that order) and the
// visitor id. Requests are signed with a SAPISIDHASH computed per request by
// [SignatureSource], an [oauth2.TokenSource], so the Authorization header is
// written with [oauth2.Token.SetAuthHeader]. Cookies without a session secret
// produce unsigned requests rather than an error.
//
// # Fallback
//
// Two retry axes share one combinator: [Client.Post] walks the configured client
// versions and [Session] walks account indexes (preferred first, then the
// configured defaults). Only errors matched by [shared.IsInvalidArgument] move to
// the next candidate; anything else aborts. Every account index runs the full
// client version sequence before the next one is tried.
//
// # Errors
//
//   - [shared.UpstreamError] : non-2xx response with status and body
//   - [shared.ErrAPIRequest] : transport failure
//   - [shared.ValidationError] : empty cookie header
package services
