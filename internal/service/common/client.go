//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oshokin/scoop-manifest/internal/config"
	"github.com/oshokin/scoop-manifest/internal/version"
)

const (
	// githubMediaType is the Accept value recommended by the GitHub REST API.
	githubMediaType = "application/vnd.github+json"
	// githubAPIVersion pins the REST API version.
	githubAPIVersion = "2022-11-28"
)

// Client is the HTTP session of one generation run.
type Client struct {
	// http carries the auth transport; shared by the resolver and the digest computer.
	http *http.Client
	// apiURL is the GitHub API base URL, always with a trailing slash.
	apiURL *url.URL
	// token is the optional bearer credential.
	token string
	// transport is the underlying round tripper, http.DefaultTransport by default.
	transport http.RoundTripper

	// callTimeout bounds API calls.
	callTimeout time.Duration
	// downloadTimeout bounds a single asset download.
	downloadTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithToken sets a GitHub token sent as "Authorization: Bearer".
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithCallTimeout sets the timeout for API calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithDownloadTimeout sets the timeout for a single asset download.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.downloadTimeout = timeout
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// errAPIURLRequired is returned when no API base URL is provided.
var errAPIURLRequired = errors.New("API URL must be provided")

// NewClient creates the HTTP session for apiURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	if apiURL == "" {
		return nil, errAPIURLRequired
	}

	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}

	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	client := &Client{
		apiURL:          base,
		transport:       http.DefaultTransport,
		callTimeout:     config.DefaultTimeout,
		downloadTimeout: config.DefaultDownloadTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.http = &http.Client{
		Transport: &authTransport{
			base:   client.transport,
			apiURL: client.apiURL,
			token:  client.token,
		},
	}

	return client, nil
}

// HTTP returns the shared *http.Client.
func (c *Client) HTTP() *http.Client {
	return c.http
}

// APIURL returns a copy of the API base URL.
func (c *Client) APIURL() *url.URL {
	u := *c.apiURL

	return &u
}

// HasToken reports whether a credential is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// CallContext returns a context bounded by the API call timeout.
func (c *Client) CallContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withOptionalTimeout(ctx, c.callTimeout)
}

// DownloadContext returns a context bounded by the download timeout.
func (c *Client) DownloadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withOptionalTimeout(ctx, c.downloadTimeout)
}

// withOptionalTimeout returns a context with timeout if positive,
// otherwise a cancellable child context without a deadline.
func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// authTransport adds the User-Agent to every request and the GitHub headers
// with the token to requests addressed to the API host only, so the token
// never leaks to download CDNs.
type authTransport struct {
	base   http.RoundTripper
	apiURL *url.URL
	token  string
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.Header.Set("User-Agent", version.UserAgent())

	if t.token != "" && strings.EqualFold(out.URL.Host, t.apiURL.Host) {
		out.Header.Set("Authorization", "Bearer "+t.token)
		out.Header.Set("Accept", githubMediaType)
		out.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	}

	return t.base.RoundTrip(out)
}
