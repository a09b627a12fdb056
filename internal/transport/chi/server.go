// Package chi exposes the search engine over HTTP: listing, spatial and
// facet queries, entity detail, the engagement write path, and health.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	logpkg "github.com/VishwanathArchakMR/Naveeka-sub002/internal/logger"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/metrics"
	facetuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/facet"
	geojsonuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/geojson"
	healthuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/health"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
	searchuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/search"
)

// Server wires the use case services into HTTP handlers.
type Server struct {
	search  *searchuc.Service
	facets  *facetuc.Service
	reviews *reviewuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
	apiKeys []string
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	facets *facetuc.Service,
	reviews *reviewuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	apiKeys []string,
) *Server {
	return &Server{
		search:  search,
		facets:  facets,
		reviews: reviews,
		health:  health,
		logger:  logger,
		apiKeys: apiKeys,
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(APIKeyMiddleware(s.apiKeys))
	r.Use(metrics.Middleware())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/entities", s.listEntities)
		r.Get("/entities/near", s.nearEntities)
		r.Get("/entities/within", s.withinEntities)
		r.Get("/entities/geojson", s.entitiesGeoJSON)
		r.Get("/entities/{id}", s.getEntity)
		r.Post("/entities/{id}/reviews", s.postReview)
		r.Post("/entities/{id}/views", s.postView)
		r.Get("/facets", s.getFacets)
	})
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// listEntities handles GET /v1/entities.
func (s *Server) listEntities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := filterOptionsFromQuery(r)
	sort := page.Sort(q.Get("sort"))
	pageNum := intParam(q.Get("page"), page.DefaultPage)
	limit := intParam(q.Get("limit"), page.DefaultLimit)

	start := time.Now()
	pg, err := s.search.List(r.Context(), opts, sort, pageNum, limit)
	metrics.ObserveSearch("list", time.Since(start).Seconds(), len(pg.Items()), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(pg))
}

// nearEntities handles GET /v1/entities/near.
func (s *Server) nearEntities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lng, lat, err := requiredFloats(q.Get("lng"), q.Get("lat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	radiusKm, err := strconv.ParseFloat(q.Get("radiusKm"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "radiusKm must be a number")
		return
	}
	limit := intParam(q.Get("limit"), 0)

	start := time.Now()
	hits, err := s.search.Near(r.Context(), filterOptionsFromQuery(r), lng, lat, radiusKm, limit)
	metrics.ObserveSearch("near", time.Since(start).Seconds(), len(hits), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hitsToDTO(hits))
}

// withinEntities handles GET /v1/entities/within.
func (s *Server) withinEntities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minLng, minLat, err := requiredFloats(q.Get("minLng"), q.Get("minLat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	maxLng, maxLat, err := requiredFloats(q.Get("maxLng"), q.Get("maxLat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	limit := intParam(q.Get("limit"), 0)

	start := time.Now()
	hits, err := s.search.Within(r.Context(), filterOptionsFromQuery(r), minLng, minLat, maxLng, maxLat, limit)
	metrics.ObserveSearch("within", time.Since(start).Seconds(), len(hits), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hitsToDTO(hits))
}

// entitiesGeoJSON handles GET /v1/entities/geojson: the listing query
// projected to a FeatureCollection.
func (s *Server) entitiesGeoJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := filterOptionsFromQuery(r)
	sort := page.Sort(q.Get("sort"))
	pageNum := intParam(q.Get("page"), page.DefaultPage)
	limit := intParam(q.Get("limit"), page.DefaultLimit)

	start := time.Now()
	pg, err := s.search.List(r.Context(), opts, sort, pageNum, limit)
	metrics.ObserveSearch("geojson", time.Since(start).Seconds(), len(pg.Items()), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, geojsonuc.Project(pg.Items()))
}

// getEntity handles GET /v1/entities/{id}. A "slug:" prefix switches the
// lookup to the slug index.
func (s *Server) getEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	const slugPrefix = "slug:"
	lookup := s.search.Get
	if rest, ok := strings.CutPrefix(id, slugPrefix); ok {
		lookup = s.search.GetBySlug
		id = rest
	}

	e, err := lookup(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entityToDTO(e))
}

// postReview handles POST /v1/entities/{id}/reviews.
func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	rev, err := s.reviews.Add(r.Context(), chi.URLParam(r, "id"), req.Rating, req.Text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewDTO{
		ID:        rev.ID,
		EntityID:  rev.EntityID,
		Rating:    rev.Rating,
		Text:      rev.Text,
		CreatedAt: rev.CreatedAt,
	})
}

// postView handles POST /v1/entities/{id}/views.
func (s *Server) postView(w http.ResponseWriter, r *http.Request) {
	views, err := s.reviews.RecordView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsDTO{Views: views})
}

// getFacets handles GET /v1/facets.
func (s *Server) getFacets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res, err := s.facets.Aggregate(r.Context(), filterOptionsFromQuery(r))
	metrics.ObserveSearch("facets", time.Since(start).Seconds(), len(res.Categories()), err)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facetsToDTO(res))
}

// healthz handles GET /healthz.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// handleDomainError maps domain sentinels to HTTP statuses.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "entity not found")
	case errors.Is(err, domain.ErrInvalidGeometry):
		writeError(w, http.StatusBadRequest, "invalid_geometry", err.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "search store unavailable")
	default:
		// The request-scoped logger carries the request id set by the
		// middleware, so the error line correlates with the access line.
		logpkg.FromContext(r.Context()).Error("unhandled domain error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func requiredFloats(a, b string) (float64, float64, error) {
	av, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate %q must be a number", a)
	}
	bv, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate %q must be a number", b)
	}
	return av, bv, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorDTO{Code: code, Message: message})
}
