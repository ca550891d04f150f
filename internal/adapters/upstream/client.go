// Package upstream talks to the team-manager scoring API: organization
// discovery, per-team season stats and rosters, and team records. It
// normalizes the wire stat blocks into raw domain stat lines and leaves
// all derivation to the domain layer.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/pkg/logger"
	"github.com/gamechanger-stats/seasonstats/pkg/metrics"
)

const (
	// DefaultBaseURL is the production team-manager API host.
	DefaultBaseURL = "https://api.team-manager.gc.com"

	defaultTimeout     = 15 * time.Second
	defaultConcurrency = 4
)

// Client is a token-authenticated team-manager API client. The token
// can be swapped at runtime; swaps are guarded so in-flight requests
// keep the token they started with.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	log         logger.Logger
	concurrency int

	mu    sync.RWMutex
	token string
}

// Option applies a configuration option to the client.
type Option func(*Client)

// WithBaseURL overrides the upstream host, mainly for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithConcurrency bounds the number of teams fetched in parallel when
// assembling a snapshot.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a team-manager client with the given bearer token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		baseURL:     DefaultBaseURL,
		log:         logger.Named("upstream"),
		concurrency: defaultConcurrency,
		token:       token,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken swaps the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// VerifyToken checks a candidate token against the upstream without
// installing it. The me/teams listing is the cheapest authenticated call.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	var teams []meTeam
	return c.get(ctx, "/me/teams", token, &teams)
}

// Organizations lists the organizations the authenticated user belongs
// to, resolved to full detail. Avatars are best effort; an organization
// that fails to resolve is skipped rather than failing the listing.
func (c *Client) Organizations(ctx context.Context) ([]model.Organization, error) {
	token := c.Token()

	var teams []meTeam
	if err := c.get(ctx, "/me/teams", token, &teams); err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, team := range teams {
		for _, membership := range team.Organizations {
			if membership.OrganizationID == "" || membership.Status != "active" {
				continue
			}
			if !seen[membership.OrganizationID] {
				seen[membership.OrganizationID] = true
				ids = append(ids, membership.OrganizationID)
			}
		}
	}

	orgs := make([]model.Organization, 0, len(ids))
	for _, id := range ids {
		var data organizationData
		if err := c.get(ctx, "/organizations/"+url.PathEscape(id), token, &data); err != nil {
			if isAuthErr(err) {
				return nil, err
			}
			c.log.Warn(ctx, "skipping organization", logger.String("organization_id", id), logger.Error(err))
			continue
		}

		org := model.Organization{
			ID:         data.ID,
			Name:       data.Name,
			Sport:      data.Sport,
			SeasonName: data.SeasonName,
			SeasonYear: data.SeasonYear,
			City:       data.City,
			State:      data.State,
			Type:       data.Type,
		}

		var avatar avatarData
		if err := c.get(ctx, "/organizations/"+url.PathEscape(id)+"/avatar_image", token, &avatar); err == nil {
			org.AvatarURL = avatar.FullMediaURL
		}

		orgs = append(orgs, org)
	}

	return orgs, nil
}

// get performs an authenticated GET and decodes the JSON response into
// out. Upstream soft auth failures (200 with a missing-authentication
// body) surface as ErrUnauthorized like a real 401 would.
func (c *Client) get(ctx context.Context, path, token string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamError()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamError()
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.RecordUpstreamError()
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		metrics.RecordUpstreamError()
		return fmt.Errorf("%w: %d on %s", ErrStatus, resp.StatusCode, path)
	}

	var marker authMarker
	if json.Unmarshal(body, &marker) == nil && marker.denied() {
		metrics.RecordUpstreamError()
		return ErrUnauthorized
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			metrics.RecordUpstreamError()
			return fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	metrics.RecordUpstreamFetch(float64(time.Since(start).Milliseconds()))
	return nil
}
