package placedex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultClientTimeout = 10 * time.Second
	maxResponseSize      = 1 << 20 // 1MB

	autocompletePath = "/api/places/autocomplete"
	detailsPath      = "/api/places/details"
)

// Source is the suggestion backend consumed by a Resolver.
type Source interface {
	// Suggest fetches predictions for the query; order is preserved.
	Suggest(ctx context.Context, query, types string) ([]Suggestion, error)
	// Resolve fetches the full record for a chosen suggestion.
	Resolve(ctx context.Context, placeID string) (PlaceDetail, error)
}

// Compile-time check: Client implements Source.
var _ Source = (*Client)(nil)

// Client is the placedex API client.
//
// Every request carries credentials: session cookies via the cookie jar
// and the optional Bearer API key. Autocomplete calls within one
// type-ahead session share a session token; the token rotates after each
// Resolve so the upstream provider can group billing correctly.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger

	mu      sync.Mutex
	session string
}

// New creates a placedex Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultClientTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("placedex: base URL required (use WithBaseURL)")
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("placedex: create cookie jar: %w", err)
		}
		httpClient = &http.Client{Timeout: cfg.timeout, Jar: jar}
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		apiKey:  cfg.apiKey,
		logger:  logger,
	}, nil
}

// Suggest fetches autocomplete predictions for the given query text.
// A response without a predictions field yields an empty list.
func (c *Client) Suggest(ctx context.Context, query, types string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("input", query)
	if types != "" {
		params.Set("types", types)
	}
	params.Set("sessiontoken", c.sessionToken())

	body, err := c.get(ctx, autocompletePath, params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Predictions []Suggestion `json:"predictions"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("placedex: decode predictions: %w", ErrUnavailable)
	}
	return resp.Predictions, nil
}

// Resolve fetches the full place record for a place ID. The autocomplete
// session token is rotated afterwards regardless of outcome.
func (c *Client) Resolve(ctx context.Context, placeID string) (PlaceDetail, error) {
	defer c.rotateSession()

	params := url.Values{}
	params.Set("placeId", placeID)
	params.Set("sessiontoken", c.sessionToken())

	body, err := c.get(ctx, detailsPath, params)
	if err != nil {
		return PlaceDetail{}, err
	}

	var detail PlaceDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return PlaceDetail{}, fmt.Errorf("placedex: decode place: %w", ErrUnavailable)
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("placedex: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("placedex: %s: %v: %w", path, err, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("placedex: %s read body: %w", path, ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(path, resp.StatusCode, body)
	}
	return body, nil
}

// statusError maps a non-2xx response to a sentinel, keeping the server's
// error message when the envelope parses.
func statusError(path string, status int, body []byte) error {
	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case status >= 400 && status < 500:
		sentinel = ErrInvalidRequest
	default:
		sentinel = ErrUnavailable
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
		return fmt.Errorf("placedex: %s HTTP %d: %s: %w", path, status, envelope.Message, sentinel)
	}
	return fmt.Errorf("placedex: %s HTTP %d: %w", path, status, sentinel)
}

func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == "" {
		c.session = uuid.NewString()
	}
	return c.session
}

func (c *Client) rotateSession() {
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()
}
