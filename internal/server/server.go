package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/stability/internal/engine"
	"github.com/lazypower/stability/internal/store"
)

// Server is the stability HTTP API server.
type Server struct {
	db      *store.DB
	eng     *engine.Engine
	router  chi.Router
	version string
	started time.Time
	now     func() time.Time
}

// New creates a new Server over the given store and engine.
func New(db *store.DB, eng *engine.Engine, version string) *Server {
	s := &Server{
		db:      db,
		eng:     eng,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// SetClock overrides the wall clock, for tests.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/score", s.handleGetScore)
		r.Get("/ledger", s.handleGetLedger)
		r.Get("/history", s.handleGetHistory)
		r.Post("/activities", s.handleCompleteActivity)
		r.Post("/usage", s.handleUsageSync)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
