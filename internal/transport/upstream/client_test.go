package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tripdesk-cloud/placedex/internal/domain"
	"github.com/tripdesk-cloud/placedex/internal/domain/query"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Config{BaseURL: srv.URL, APIKey: "test-key"})
}

func mustQuery(t *testing.T, text string) query.Query {
	t.Helper()
	q, err := query.New(text)
	if err != nil {
		t.Fatalf("query.New(%q) failed: %v", text, err)
	}
	return q
}

const autocompleteBody = `{
	"status": "OK",
	"predictions": [
		{
			"place_id": "p1",
			"description": "Paris, France",
			"structured_formatting": {"main_text": "Paris", "secondary_text": "France"}
		},
		{
			"place_id": "p2",
			"description": "Paris, TX, USA"
		},
		{
			"description": "malformed, no place_id"
		}
	]
}`

func TestSuggest_ParsesPredictions(t *testing.T) {
	var gotPath, gotInput, gotKey, gotSession string
	var mu sync.Mutex
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("input")
		gotKey = r.URL.Query().Get("key")
		gotSession = r.URL.Query().Get("sessiontoken")
		mu.Unlock()
		_, _ = w.Write([]byte(autocompleteBody))
	})

	list, err := c.Suggest(context.Background(), mustQuery(t, "paris"), "", "sess-1")
	if err != nil {
		t.Fatalf("Suggest() failed: %v", err)
	}

	mu.Lock()
	if gotPath != "/autocomplete/json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotInput != "paris" || gotKey != "test-key" || gotSession != "sess-1" {
		t.Errorf("unexpected params: input=%q key=%q session=%q", gotInput, gotKey, gotSession)
	}
	mu.Unlock()

	// The malformed entry is skipped, the rest keep order.
	if len(list) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(list))
	}
	if list[0].PlaceID() != "p1" || list[0].Primary() != "Paris" || list[0].Secondary() != "France" {
		t.Errorf("unexpected first prediction: %s/%s/%s",
			list[0].PlaceID(), list[0].Primary(), list[0].Secondary())
	}
	// No structured formatting: description is the fallback label.
	if list[1].Primary() != "Paris, TX, USA" {
		t.Errorf("expected description fallback, got %q", list[1].Primary())
	}
}

func TestSuggest_ZeroResults(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","predictions":[]}`))
	})

	list, err := c.Suggest(context.Background(), mustQuery(t, "zzzz"), "", "")
	if err != nil {
		t.Fatalf("Suggest() failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestSuggest_ProviderStatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   error
	}{
		{"OVER_QUERY_LIMIT", domain.ErrRateLimited},
		{"INVALID_REQUEST", domain.ErrInvalidQuery},
		{"REQUEST_DENIED", domain.ErrUpstreamUnavailable},
		{"UNKNOWN_ERROR", domain.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"` + tt.status + `"}`))
			})

			_, err := c.Suggest(context.Background(), mustQuery(t, "paris"), "", "")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSuggest_RateLimitedHTTPStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Suggest(context.Background(), mustQuery(t, "paris"), "", "")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestSuggest_ServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Suggest(context.Background(), mustQuery(t, "paris"), "", "")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSuggest_InvalidJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Suggest(context.Background(), mustQuery(t, "paris"), "", "")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

const detailsBody = `{
	"status": "OK",
	"result": {
		"place_id": "p1",
		"name": "Louvre Museum",
		"formatted_address": "Rue de Rivoli, 75001 Paris, France",
		"international_phone_number": "+33 1 40 20 50 50",
		"website": "https://www.louvre.fr/",
		"types": ["museum", "tourist_attraction"],
		"editorial_summary": {"overview": "World's largest art museum."},
		"photos": [{"photo_reference": "ref1"}, {"photo_reference": "ref2"}, {}],
		"geometry": {"location": {"lat": 48.8606, "lng": 2.3376}}
	}
}`

func TestResolve_ParsesPlace(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/details/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("place_id"); got != "p1" {
			t.Errorf("expected place_id=p1, got %q", got)
		}
		_, _ = w.Write([]byte(detailsBody))
	})

	p, err := c.Resolve(context.Background(), "p1", "sess-1")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if p.ID() != "p1" || p.Name() != "Louvre Museum" {
		t.Errorf("unexpected place: %s / %s", p.ID(), p.Name())
	}
	if p.Address() != "Rue de Rivoli, 75001 Paris, France" {
		t.Errorf("unexpected address %q", p.Address())
	}
	if p.Phone() != "+33 1 40 20 50 50" || p.Website() != "https://www.louvre.fr/" {
		t.Errorf("unexpected contact fields: %q / %q", p.Phone(), p.Website())
	}
	if len(p.Tags()) != 2 || p.Tags()[0] != "museum" {
		t.Errorf("unexpected tags %v", p.Tags())
	}
	if p.Description() != "World's largest art museum." {
		t.Errorf("unexpected description %q", p.Description())
	}
	// The empty photo entry is dropped.
	if len(p.Photos()) != 2 || p.Photos()[1] != "ref2" {
		t.Errorf("unexpected photos %v", p.Photos())
	}
	loc, ok := p.Location()
	if !ok || loc.Lat() != 48.8606 || loc.Lng() != 2.3376 {
		t.Errorf("unexpected location: %v %v", loc, ok)
	}
}

func TestResolve_MinimalResult(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"Somewhere"}}`))
	})

	p, err := c.Resolve(context.Background(), "p9", "")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	// place_id falls back to the requested ID.
	if p.ID() != "p9" {
		t.Errorf("expected requested ID as fallback, got %q", p.ID())
	}
	if _, ok := p.Location(); ok {
		t.Error("expected no location")
	}
}

func TestResolve_NotFoundStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
	})

	_, err := c.Resolve(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_MissingResult(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})

	_, err := c.Resolve(context.Background(), "p1", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	// Any HTTP response counts as reachable.
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() failed: %v", err)
	}

	down := NewClient(&Config{BaseURL: "http://127.0.0.1:1"})
	if err := down.HealthCheck(context.Background()); err == nil {
		t.Error("expected error for unreachable provider")
	}
}
