// YouTube Music session: one cookie set, falling back across account indexes.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Session issues requests on behalf of one set of browser cookies.
//
// The account index that succeeds is remembered and tried first on later calls.
type Session struct {
	client    *Client
	creds     *Credentials
	preferred string
	resolved  string
	logger    *log.Logger
	now       func() time.Time
}

// NewSession derives credentials from raw cookies and binds them to c.
func (c *Client) NewSession(cookies, authUser string) (*Session, error) {
	creds, err := ParseCredentials(cookies)
	if err != nil {
		return nil, err
	}
	creds.Origin = c.origin
	creds.UserAgent = c.userAgent

	if authUser == "" {
		authUser = "0"
	}
	return &Session{
		client:    c,
		creds:     creds,
		preferred: authUser,
		logger:    c.logger.With("auth_user", authUser),
		now:       time.Now,
	}, nil
}

// Credentials returns the derived credentials.
func (s *Session) Credentials() *Credentials { return s.creds }

// AuthUser implements [Music].
func (s *Session) AuthUser() string {
	if s.resolved != "" {
		return s.resolved
	}
	return s.preferred
}

// candidates orders account indexes: resolved, preferred, then configured defaults.
func (s *Session) candidates() []string {
	return uniqueCandidates(append([]string{s.resolved, s.preferred}, s.client.authUsers...)...)
}

func (s *Session) call(ctx context.Context, endpoint string, params map[string]any) (any, error) {
	result, authUser, err := firstAccepted(s.candidates(), func(authUser string) (any, error) {
		return s.client.Post(ctx, endpoint, params, s.creds.Headers(authUser, s.now()))
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	if authUser != s.resolved {
		s.logger.Debug("account index resolved", "endpoint", endpoint, "resolved", authUser)
	}
	s.resolved = authUser
	return result, nil
}

// Browse implements [Music].
func (s *Session) Browse(ctx context.Context, browseID string) (any, error) {
	return s.call(ctx, EndpointBrowse, map[string]any{"browseId": browseID})
}

// Continue implements [Music].
func (s *Session) Continue(ctx context.Context, token, browseID string) (any, error) {
	params := map[string]any{"continuation": token}
	if browseID != "" {
		params["browseId"] = browseID
	}
	return s.call(ctx, EndpointBrowse, params)
}

// Search implements [Music].
func (s *Session) Search(ctx context.Context, query string) (any, error) {
	return s.call(ctx, EndpointSearch, map[string]any{"query": query})
}

// Like implements [Music].
func (s *Session) Like(ctx context.Context, videoID string) error {
	_, err := s.call(ctx, EndpointLike, likeTarget(videoID))
	return err
}

// RemoveLike implements [Music].
func (s *Session) RemoveLike(ctx context.Context, videoID string) error {
	_, err := s.call(ctx, EndpointRemoveLike, likeTarget(videoID))
	return err
}

func likeTarget(videoID string) map[string]any {
	return map[string]any{"target": map[string]any{"videoId": videoID}}
}
