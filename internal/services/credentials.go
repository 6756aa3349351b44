package services

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

const (
	DefaultOrigin    = "https://music.youtube.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// SignatureTokenType is the Authorization scheme used for cookie-signed requests.
	SignatureTokenType = "SAPISIDHASH"

	visitorCookie = "VISITOR_INFO1_LIVE"
)

// secretCookies lists the session cookies that can sign a request, most preferred first.
var secretCookies = []string{"__Secure-3PAPISID", "__Secure-1PAPISID", "SAPISID", "APISID"}

var cookiePrefix = regexp.MustCompile(`(?i)^\s*cookie\s*:`)

// Credentials is the material derived from a browser cookie header.
type Credentials struct {
	Cookie    string // cleaned cookie header, sent verbatim
	Secret    string // session secret used for the signature, empty when none was found
	VisitorID string
	Origin    string
	UserAgent string
}

// CleanCookie strips a leading "cookie:" label and all line breaks.
func CleanCookie(raw string) string {
	cleaned := cookiePrefix.ReplaceAllString(raw, "")
	cleaned = strings.NewReplacer("\r", "", "\n", "").Replace(cleaned)
	return strings.TrimSpace(cleaned)
}

// ParseCredentials derives [Credentials] from a raw cookie header.
//
// It fails only when nothing remains after cleaning; a cookie without any session secret yields unsigned credentials.
func ParseCredentials(raw string) (*Credentials, error) {
	cookie := CleanCookie(raw)
	if cookie == "" {
		return nil, shared.NewValidationError(shared.ErrEmptyCredential, "cookies are required")
	}

	creds := &Credentials{
		Cookie:    cookie,
		VisitorID: CookieValue(cookie, visitorCookie),
		Origin:    DefaultOrigin,
		UserAgent: DefaultUserAgent,
	}
	for _, name := range secretCookies {
		if v := CookieValue(cookie, name); v != "" {
			creds.Secret = v
			break
		}
	}
	return creds, nil
}

// CookieValue returns the value of the named cookie in a `name=value; ...` header.
func CookieValue(cookie, name string) string {
	for pair := range strings.SplitSeq(cookie, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && k == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Signature computes the SAPISIDHASH value for secret and origin at the given time.
func Signature(secret, origin string, at time.Time) string {
	return SignatureTokenType + " " + signatureValue(secret, origin, at)
}

func signatureValue(secret, origin string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	sum := sha1.Sum([]byte(ts + " " + secret + " " + origin))
	return ts + "_" + hex.EncodeToString(sum[:])
}

// SignatureSource is an [oauth2.TokenSource] that signs with the session secret.
//
// Tokens are timestamp bound and are recomputed on every call.
type SignatureSource struct {
	Secret string
	Origin string
	Now    func() time.Time
}

// Token implements [oauth2.TokenSource].
func (s SignatureSource) Token() (*oauth2.Token, error) {
	if s.Secret == "" {
		return nil, shared.ErrMissingCredentials
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return &oauth2.Token{
		AccessToken: signatureValue(s.Secret, s.Origin, now()),
		TokenType:   SignatureTokenType,
	}, nil
}

// TokenSource returns the signer for c; callers must check [Credentials.Signed] first.
func (c *Credentials) TokenSource(now func() time.Time) oauth2.TokenSource {
	return SignatureSource{Secret: c.Secret, Origin: c.Origin, Now: now}
}

// Signed reports whether a session secret was found.
func (c *Credentials) Signed() bool { return c.Secret != "" }

// Apply sets the request headers for the given account index.
func (c *Credentials) Apply(req *http.Request, authUser string, at time.Time) {
	req.Header.Set("Cookie", c.Cookie)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-Goog-AuthUser", authUser)
	req.Header.Set("Origin", c.Origin)
	req.Header.Set("Referer", c.Origin)

	if c.VisitorID != "" {
		req.Header.Set("X-Goog-Visitor-Id", c.VisitorID)
	}

	if !c.Signed() {
		return
	}
	if tok, err := c.TokenSource(func() time.Time { return at }).Token(); err == nil {
		tok.SetAuthHeader(req)
	}
}

// Headers returns the headers [Credentials.Apply] would set.
func (c *Credentials) Headers(authUser string, at time.Time) http.Header {
	req := &http.Request{Header: http.Header{}}
	c.Apply(req, authUser, at)
	return req.Header
}
