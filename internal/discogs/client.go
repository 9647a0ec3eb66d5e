package discogs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/waxmatchapp/waxmatch-server/internal/ratelimit"
)

const (
	// Rate limit: Discogs allows 60 requests/minute for authenticated
	// clients and throttles unauthenticated ones much harder.
	defaultRPS   = 1.0
	defaultBurst = 2

	// HTTP client settings. Timeout policy for catalog calls lives here;
	// the analytics engine does not impose its own.
	defaultTimeout = 30 * time.Second

	defaultUserAgent = "WaxMatch/1.0 +https://waxmatch.app"

	// publicKey is the rate-limiter key for unauthenticated requests.
	publicKey = "public"
)

// Config holds client construction options.
type Config struct {
	BaseURL string
	// Token is a server-wide personal access token. Per-call credentials
	// from a session override it.
	Token string
	// RequestsPerSecond and Burst override the default outbound rate limit
	// when > 0.
	RequestsPerSecond float64
	Burst             int
}

// Client is a rate-limited Discogs API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	baseURL string
	token   string
}

// New creates a new Discogs client.
func New(cfg Config, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.discogs.com"
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(rps, burst),
		logger:  logger,
		baseURL: baseURL,
		token:   cfg.Token,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// WithToken returns a shallow copy of the client using the given personal
// access token. The HTTP client and rate limiter are shared, so all requests
// for one account draw from the same budget.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// rateKey returns the limiter key for this client's identity. Authenticated
// and public traffic have separate budgets on the Discogs side.
func (c *Client) rateKey() string {
	if c.token != "" {
		return "token:" + c.token
	}
	return publicKey
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	// Wait for rate limit
	if err := c.limiter.Wait(ctx, c.rateKey()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	c.logger.Debug("discogs request",
		"path", path,
		"authenticated", c.token != "",
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
