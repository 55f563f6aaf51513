// Package upstream implements the HTTP client for the configured places
// provider (a Google-Places-compatible API).
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tripdesk-cloud/placedex/internal/domain"
	"github.com/tripdesk-cloud/placedex/internal/domain/geo"
	"github.com/tripdesk-cloud/placedex/internal/domain/place"
	"github.com/tripdesk-cloud/placedex/internal/domain/query"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
	"github.com/tripdesk-cloud/placedex/internal/metrics"
)

const (
	defaultTimeout  = 5 * time.Second
	maxResponseSize = 1 << 20 // 1MB

	opAutocomplete = "autocomplete"
	opDetails      = "details"
)

// Client is a places provider client over the provider's JSON API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a places provider client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// Suggest fetches autocomplete predictions for the given query.
// Response order is preserved; a missing predictions field means no matches.
func (c *Client) Suggest(
	ctx context.Context, q query.Query, types, session string,
) ([]suggestion.Suggestion, error) {
	params := url.Values{}
	params.Set("input", q.Text())
	if types != "" {
		params.Set("types", types)
	}
	if session != "" {
		params.Set("sessiontoken", session)
	}

	body, err := c.get(ctx, opAutocomplete, "/autocomplete/json", params)
	if err != nil {
		return nil, err
	}

	if err := checkProviderStatus(opAutocomplete, body); err != nil {
		return nil, err
	}

	var out []suggestion.Suggestion
	for _, p := range gjson.GetBytes(body, "predictions").Array() {
		primary := p.Get("structured_formatting.main_text").String()
		if primary == "" {
			primary = p.Get("description").String()
		}
		s, err := suggestion.New(
			p.Get("place_id").String(),
			primary,
			p.Get("structured_formatting.secondary_text").String(),
		)
		if err != nil {
			// Skip malformed entries instead of failing the whole list.
			c.logger.Warn("Skipping malformed prediction", zap.Error(err))
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Resolve fetches the full place record for a place ID.
func (c *Client) Resolve(ctx context.Context, id, session string) (place.Place, error) {
	params := url.Values{}
	params.Set("place_id", id)
	if session != "" {
		params.Set("sessiontoken", session)
	}

	body, err := c.get(ctx, opDetails, "/details/json", params)
	if err != nil {
		return place.Place{}, err
	}

	if err := checkProviderStatus(opDetails, body); err != nil {
		return place.Place{}, err
	}

	return placeFromDetails(id, body)
}

// HealthCheck verifies provider reachability. Any HTTP response counts as
// reachable; only transport failures are reported.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// get issues a GET request and returns the response body with transport-level metrics.
func (c *Client) get(
	ctx context.Context, op, path string, params url.Values,
) ([]byte, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "transport").Inc()
		return nil, fmt.Errorf("%s request failed: %w", op, domain.ErrUpstreamUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "read_body").Inc()
		return nil, fmt.Errorf("%s read body: %w", op, domain.ErrUpstreamUnavailable)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "rate_limited").Inc()
		return nil, fmt.Errorf("%s HTTP %d: %w", op, resp.StatusCode, domain.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "http_status").Inc()
		return nil, fmt.Errorf("%s HTTP %d: %w", op, resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	if !gjson.ValidBytes(body) {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "invalid_json").Inc()
		return nil, fmt.Errorf("%s invalid JSON response: %w", op, domain.ErrUpstreamUnavailable)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	return body, nil
}

// checkProviderStatus maps the provider's in-band status field to domain errors.
func checkProviderStatus(op string, body []byte) error {
	status := gjson.GetBytes(body, "status").String()
	switch status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "rate_limited").Inc()
		return fmt.Errorf("%s provider status %s: %w", op, status, domain.ErrRateLimited)
	case "NOT_FOUND":
		return fmt.Errorf("%s provider status %s: %w", op, status, domain.ErrNotFound)
	case "INVALID_REQUEST":
		return fmt.Errorf("%s provider status %s: %w", op, status, domain.ErrInvalidQuery)
	default:
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "provider_status").Inc()
		return fmt.Errorf("%s provider status %s: %w", op, status, domain.ErrUpstreamUnavailable)
	}
}

// placeFromDetails builds a validated Place from the provider's result object.
func placeFromDetails(id string, body []byte) (place.Place, error) {
	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return place.Place{}, fmt.Errorf("details missing result: %w", domain.ErrNotFound)
	}

	var tags []string
	for _, t := range result.Get("types").Array() {
		tags = append(tags, t.String())
	}

	var photos []string
	for _, p := range result.Get("photos").Array() {
		if ref := p.Get("photo_reference").String(); ref != "" {
			photos = append(photos, ref)
		}
	}

	placeID := result.Get("place_id").String()
	if placeID == "" {
		placeID = id
	}

	pl, err := place.New(
		placeID,
		result.Get("name").String(),
		result.Get("formatted_address").String(),
		result.Get("international_phone_number").String(),
		result.Get("website").String(),
		tags,
		result.Get("editorial_summary.overview").String(),
		photos,
	)
	if err != nil {
		return place.Place{}, fmt.Errorf("build place: %w: %w", err, domain.ErrUpstreamUnavailable)
	}

	loc := result.Get("geometry.location")
	if loc.Exists() {
		pt, err := geo.New(loc.Get("lat").Float(), loc.Get("lng").Float())
		if err != nil {
			return place.Place{}, fmt.Errorf("place coordinate: %w: %w", err, domain.ErrUpstreamUnavailable)
		}
		pl = pl.WithLocation(pt)
	}

	return pl, nil
}
