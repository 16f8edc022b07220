// Package server exposes the scoring engine over HTTP for the dashboard
// and other internal consumers.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/dataset"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
	"github.com/helloteeco/Edge-sub001/internal/store"
)

// Options configures a Server.
type Options struct {
	RateLimit   float64
	RateBurst   int
	CompPoolTTL time.Duration
}

// Server routes API requests to the scoring engine. The store is optional:
// without one, score history and comp pool caching are skipped.
type Server struct {
	data  *dataset.Dataset
	store store.Store
	opts  Options
}

// New builds a Server. st may be nil.
func New(data *dataset.Dataset, st store.Store, opts Options) *Server {
	return &Server{data: data, store: st, opts: opts}
}

// Handler builds the chi router with CORS and rate limiting applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.opts.RateLimit > 0 {
		r.Use(rateLimit(s.opts.RateLimit, s.opts.RateBurst))
	}

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/markets", s.handleMarkets)
		r.Get("/markets/{id}/score", s.handleMarketScore)
		r.Get("/states", s.handleStates)
		r.Post("/comps/refilter", s.handleRefilterComps)
	})
	return r
}

// rateLimit applies a process-wide token bucket; a single shared dataset
// makes per-client buckets pointless here.
func rateLimit(limit float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.ScoreAll())
}

// marketScoreResponse is one market's full scoring view.
type marketScoreResponse struct {
	City       dataset.City       `json:"city"`
	Breakdown  scoring.Breakdown  `json:"breakdown"`
	Regulation dataset.Regulation `json:"regulation"`
}

func (s *Server) handleMarketScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	city, err := s.data.City(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown market: "+id)
		return
	}

	breakdown := scoring.ScoreMarket(city.Metrics())
	if s.store != nil {
		if _, err := s.store.SaveScore(r.Context(), city.ID, breakdown); err != nil {
			zap.L().Warn("save score failed", zap.String("city", city.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, marketScoreResponse{
		City:       city,
		Breakdown:  breakdown,
		Regulation: s.data.Regulation(city.ID),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.ScoreStates())
}

// refilterRequest is the POST /api/comps/refilter body. Comps may be
// omitted when MarketID names a market with a cached pool.
type refilterRequest struct {
	MarketID string       `json:"market_id,omitempty"`
	Target   comps.Target `json:"target"`
	Comps    []comps.Comp `json:"comps,omitempty"`
}

func (s *Server) handleRefilterComps(w http.ResponseWriter, r *http.Request) {
	var req refilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Target.Bedrooms <= 0 {
		writeError(w, http.StatusBadRequest, "target.bedrooms must be > 0")
		return
	}

	pool := req.Comps
	if len(pool) == 0 && req.MarketID != "" && s.store != nil {
		cached, err := s.store.GetCompPool(r.Context(), req.MarketID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "comp pool lookup failed")
			return
		}
		if cached != nil {
			pool = cached.Comps
		}
	}
	if len(pool) == 0 {
		writeError(w, http.StatusBadRequest, "no comps provided and none cached")
		return
	}

	if len(req.Comps) > 0 && req.MarketID != "" && s.store != nil {
		if err := s.store.SetCompPool(r.Context(), req.MarketID, req.Comps, s.opts.CompPoolTTL); err != nil {
			zap.L().Warn("cache comp pool failed", zap.String("market", req.MarketID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, comps.Rank(pool, req.Target))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
