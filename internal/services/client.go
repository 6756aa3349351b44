package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

// Client posts innertube requests, falling back across client versions.
type Client struct {
	baseURL    string
	apiKey     string
	versions   []string
	authUsers  []string
	origin     string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a [Client] from the youtube section of the config.
//
// A nil httpClient uses [http.DefaultClient]; a nil logger discards output.
func NewClient(cfg shared.YouTubeConfig, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	origin := cfg.Origin
	if origin == "" {
		origin = DefaultOrigin
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		versions:   append([]string(nil), cfg.ClientVersions...),
		authUsers:  append([]string(nil), cfg.AuthUsers...),
		origin:     origin,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ClientContext returns the context object sent with every request.
func ClientContext(version string) map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":       "WEB_REMIX",
			"clientVersion":    version,
			"hl":               "en",
			"gl":               "US",
			"utcOffsetMinutes": 0,
		},
		"user": map[string]any{
			"lockedSafetyMode": false,
		},
	}
}

// Post sends params to endpoint with each configured client version until one is not rejected as an invalid argument.
func (c *Client) Post(ctx context.Context, endpoint string, params map[string]any, header http.Header) (any, error) {
	result, _, err := firstAccepted(c.versions, func(version string) (any, error) {
		c.logger.Debug("posting", "endpoint", endpoint, "client_version", version, "auth_user", header.Get("X-Goog-AuthUser"))
		result, err := c.post(ctx, endpoint, version, params, header)
		if err != nil && shared.IsInvalidArgument(err) {
			c.logger.Debug("client version rejected", "endpoint", endpoint, "client_version", version)
		}
		return result, err
	})
	return result, err
}

func (c *Client) post(ctx context.Context, endpoint, version string, params map[string]any, header http.Header) (any, error) {
	body := make(map[string]any, len(params)+1)
	maps.Copy(body, params)
	body["context"] = ClientContext(version)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = header.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &shared.UpstreamError{Status: resp.StatusCode, Body: string(payload)}
	}

	var result any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func (c *Client) endpointURL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/") + "?key=" + url.QueryEscape(c.apiKey)
}
