// Package httpapi exposes the places API over chi.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tripdesk-cloud/placedex/internal/domain"
	"github.com/tripdesk-cloud/placedex/internal/domain/place"
	"github.com/tripdesk-cloud/placedex/internal/domain/query"
	"github.com/tripdesk-cloud/placedex/internal/domain/suggestion"
	"github.com/tripdesk-cloud/placedex/internal/metrics"
	healthuc "github.com/tripdesk-cloud/placedex/internal/usecase/health"
	resolveuc "github.com/tripdesk-cloud/placedex/internal/usecase/resolve"
	suggestuc "github.com/tripdesk-cloud/placedex/internal/usecase/suggest"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeRateLimited   = "rate_limited"
	codeUpstreamError = "upstream_error"
	codeInternalError = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the places API.
type Server struct {
	suggest       *suggestuc.Service
	resolve       *resolveuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	suggest *suggestuc.Service,
	resolve *resolveuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		suggest: suggest,
		resolve: resolve,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusBadGateway, codeUpstreamError),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/places/autocomplete", s.Autocomplete)
	r.Get("/api/places/details", s.Details)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// Autocomplete handles GET /api/places/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if strings.TrimSpace(input) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "input parameter is required")
		return
	}

	types := r.URL.Query().Get("types")
	session := r.URL.Query().Get("sessiontoken")

	list, err := s.suggest.Suggest(r.Context(), input, types, session)
	if err != nil {
		metrics.AutocompleteQueriesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, err)
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(input)) < query.MinLength {
		metrics.AutocompleteQueriesTotal.WithLabelValues("short_circuit").Inc()
	} else {
		metrics.AutocompleteQueriesTotal.WithLabelValues("served").Inc()
	}

	writeJSON(w, http.StatusOK, autocompleteResponse{Predictions: predictionsToWire(list)})
}

// Details handles GET /api/places/details.
func (s *Server) Details(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("placeId")
	if id == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "placeId parameter is required")
		return
	}

	session := r.URL.Query().Get("sessiontoken")

	p, err := s.resolve.Resolve(r.Context(), id, session)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, placeToWire(&p))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrUpstreamUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// --- wire types ---

type autocompleteResponse struct {
	Predictions []predictionWire `json:"predictions"`
}

type predictionWire struct {
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

type locationWire struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placeWire struct {
	PlaceID     string        `json:"place_id"`
	Name        string        `json:"name"`
	Address     string        `json:"address,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Website     string        `json:"website,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Description string        `json:"description,omitempty"`
	Photos      []string      `json:"photos,omitempty"`
	Location    *locationWire `json:"location,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func predictionsToWire(list []suggestion.Suggestion) []predictionWire {
	out := make([]predictionWire, len(list))
	for i := range list {
		out[i] = predictionWire{
			PlaceID:       list[i].PlaceID(),
			MainText:      list[i].Primary(),
			SecondaryText: list[i].Secondary(),
		}
	}
	return out
}

func placeToWire(p *place.Place) placeWire {
	wire := placeWire{
		PlaceID:     p.ID(),
		Name:        p.Name(),
		Address:     p.Address(),
		Phone:       p.Phone(),
		Website:     p.Website(),
		Tags:        p.Tags(),
		Description: p.Description(),
		Photos:      p.Photos(),
	}
	if pt, ok := p.Location(); ok {
		wire.Location = &locationWire{Lat: pt.Lat(), Lng: pt.Lng()}
	}
	return wire
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
