package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the maximum time to wait for a Team/User service response.
const DefaultTimeout = 10 * time.Second

// HTTPClient implements TeamsUsers against the HTTP APIs of the Team and
// User services.
type HTTPClient struct {
	teamBaseURL string
	userBaseURL string
	httpClient  *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying http.Client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// NewHTTPClient creates a TeamsUsers client for the given service base URLs.
func NewHTTPClient(teamBaseURL, userBaseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		teamBaseURL: teamBaseURL,
		userBaseURL: userBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTeam fetches a team by ID. Returns (nil, nil) when the team does not
// exist or the Team service cannot answer.
func (c *HTTPClient) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	var t Team
	if !c.get(ctx, c.teamBaseURL, "teams", id, &t) {
		return nil, nil
	}
	return &t, nil
}

// GetUser fetches a user by ID. Returns (nil, nil) when the user does not
// exist or the User service cannot answer.
func (c *HTTPClient) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if !c.get(ctx, c.userBaseURL, "users", id, &u) {
		return nil, nil
	}
	return &u, nil
}

// get performs a GET against {base}/{resource}/{id} and decodes the body into
// out. Any failure (transport, non-200 status, undecodable body) is reported
// as false: the caller treats all of them as "not found".
func (c *HTTPClient) get(ctx context.Context, baseURL, resource string, id uuid.UUID, out any) bool {
	endpoint, err := buildURL(baseURL, resource, id.String())
	if err != nil {
		slog.Warn("invalid upstream URL", "base", baseURL, "resource", resource, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Warn("building upstream request failed", "url", endpoint, "error", err)
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("upstream request failed", "url", endpoint, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode != http.StatusNotFound {
			slog.Warn("upstream returned error status", "url", endpoint, "status", resp.StatusCode)
		}
		io.Copy(io.Discard, resp.Body)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Warn("decoding upstream response failed", "url", endpoint, "error", err)
		return false
	}
	return true
}

func buildURL(baseURL string, segments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	u.Path = path.Join(append([]string{u.Path}, segments...)...)
	return u.String(), nil
}
