// Package server is the HTTP shell over the aggregation core. It owns
// wire encoding and argument bounds-checking; the core never rejects a
// limit itself.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/trendlens/trendlens/internal/aggregate"
	"github.com/trendlens/trendlens/internal/config"
	"github.com/trendlens/trendlens/internal/model"
	"github.com/trendlens/trendlens/internal/source"
	"github.com/trendlens/trendlens/internal/trend"
)

// Server exposes the aggregation operations over HTTP.
type Server struct {
	orch   *aggregate.Orchestrator
	cfg    *config.Config
	router chi.Router
}

// New builds the router with its middleware chain.
func New(orch *aggregate.Orchestrator, cfg *config.Config) *Server {
	s := &Server{orch: orch, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(throttle(cfg.Server.RequestsPerSec, cfg.Server.Burst))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodDelete},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/news", s.handleFetchAll)
		r.Get("/news/category/{category}", s.handleFetchByCategory)
		r.Get("/news/{source}", s.handleFetchOne)
		r.Get("/trends", s.handleTrends)
		r.Get("/controversy", s.handleControversy)
		r.Delete("/cache", s.handleClearCache)
	})

	s.router = r
	return s
}

// Handler returns the assembled router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// limitParam parses and bounds-checks the limit query parameter.
func (s *Server) limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return s.cfg.Limits.DefaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	if limit < 1 || limit > s.cfg.Limits.MaxLimit {
		return 0, errors.New("limit must be between 1 and " + strconv.Itoa(s.cfg.Limits.MaxLimit))
	}
	return limit, nil
}

func (s *Server) handleFetchOne(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.orch.FetchOne(r.Context(), chi.URLParam(r, "source"), limit)
	if err != nil {
		if errors.Is(err, source.ErrUnsupportedSource) {
			writeError(w, http.StatusNotFound, "unsupported source")
			return
		}
		writeError(w, http.StatusInternalServerError, "fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type multiResponse struct {
	Results   []model.SourceResult `json:"results"`
	Count     int                  `json:"count"`
	Timestamp time.Time            `json:"timestamp"`
}

func (s *Server) handleFetchAll(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := s.orch.FetchAll(r.Context(), limit)
	writeJSON(w, http.StatusOK, multiResponse{
		Results:   results,
		Count:     len(results),
		Timestamp: time.Now(),
	})
}

func (s *Server) handleFetchByCategory(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category := model.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "category must be domestic or global")
		return
	}

	results := s.orch.FetchByCategory(r.Context(), category, limit)
	writeJSON(w, http.StatusOK, multiResponse{
		Results:   results,
		Count:     len(results),
		Timestamp: time.Now(),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := s.orch.FetchAll(r.Context(), limit)
	writeJSON(w, http.StatusOK, trend.AnalyzeTrends(results))
}

func (s *Server) handleControversy(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	top := 10
	if raw := r.URL.Query().Get("top"); raw != "" {
		top, err = strconv.Atoi(raw)
		if err != nil || top < 1 {
			writeError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
	}

	results := s.orch.FetchAll(r.Context(), limit)
	writeJSON(w, http.StatusOK, trend.AnalyzeControversy(results, top))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	byCategory := make(map[string][]string)
	for _, cat := range []model.Category{model.CategoryDomestic, model.CategoryGlobal} {
		for _, entry := range s.orch.Registry().ByCategory(cat) {
			byCategory[string(cat)] = append(byCategory[string(cat)], entry.ID)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    time.Now(),
		"cache":        s.orch.CacheStats(),
		"sources":      byCategory,
		"integrations": s.cfg.Integrations(),
	})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.orch.ClearCache()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"timestamp": time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
