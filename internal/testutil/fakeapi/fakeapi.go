// Package fakeapi serves an in-memory launch API over httptest for tests.
//
// The server answers every endpoint the launch client consumes, counts hits
// per path and can be told to fail the next requests on a path with a given
// status, to exercise retries, caching and error mapping end to end.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/query"
)

// Server is a fake launch API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	launches []launch.Launch
	series   map[string]launch.Series
	hits     map[string]int
	failures map[string][]int
	delay    time.Duration
	apiKey   string
}

// New starts a server preloaded with [Launches] and [SeriesFixtures].
// It is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		launches: Launches(),
		series:   SeriesFixtures(),
		hits:     make(map[string]int),
		failures: make(map[string][]int),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.track)

	r.Get("/health", s.handleHealth)
	r.Get("/info", s.handleInfo)
	r.Get("/statistics", s.handleStats)

	r.Route("/launches", func(r chi.Router) {
		r.Get("/", s.handleLaunches)
		r.Get("/upcoming", s.handleUpcoming)
		r.Get("/past", s.handlePast)
		r.Get("/search", s.handleSearch)
		r.Get("/{id}", s.handleLaunch)
	})

	r.Get("/{series}", s.handleSeries)
	return r
}

// track counts hits, applies injected failures, the configured delay and
// the bearer key check.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")
		if path == "" {
			path = "/"
		}

		s.mu.Lock()
		s.hits[path]++
		var status int
		if q := s.failures[path]; len(q) > 0 {
			status, s.failures[path] = q[0], q[1:]
		}
		delay, key := s.delay, s.apiKey
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if key != "" && r.Header.Get("Authorization") != "Bearer "+key {
			writeError(w, http.StatusUnauthorized)
			return
		}
		if status != 0 {
			writeError(w, status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Fail makes the next n requests to path answer with status.
func (s *Server) Fail(path string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for range n {
		s.failures[path] = append(s.failures[path], status)
	}
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// SetDelay delays every response by d.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// RequireKey makes every request without "Bearer key" fail with 401.
func (s *Server) RequireKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// SetLaunches replaces the launch collection.
func (s *Server) SetLaunches(ls []launch.Launch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.launches = ls
}

// SetSeries replaces the series served at /name.
func (s *Server) SetSeries(name string, series launch.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[name] = series
}

func (s *Server) snapshot() []launch.Launch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]launch.Launch(nil), s.launches...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, launch.Health{Status: "ok", Timestamp: time.Now().UTC()})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, launch.Info{
		Name:        "launch-api",
		Version:     "1.0.0",
		Description: "Fake launch API",
		Endpoints:   []string{"/launches", "/statistics", "/health", "/info"},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatsOf(s.snapshot()))
}

func (s *Server) handleLaunches(w http.ResponseWriter, r *http.Request) {
	spec, err := query.FromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	all := query.Apply(s.snapshot(), spec)
	if r.URL.Query().Has("page") || r.URL.Query().Has("limit") {
		all = query.Page(all, spec.Page, spec.Limit)
	}
	writeJSON(w, nonNil(all))
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	s.writeSubset(w, r, true, query.Asc, 10)
}

func (s *Server) handlePast(w http.ResponseWriter, r *http.Request) {
	s.writeSubset(w, r, false, query.Desc, 20)
}

func (s *Server) writeSubset(w http.ResponseWriter, r *http.Request, upcoming bool, order query.SortOrder, def int) {
	limit := def
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest)
			return
		}
		limit = n
	}
	spec := query.FilterSpec{Upcoming: &upcoming, SortBy: query.SortDate, SortOrder: order}
	writeJSON(w, nonNil(query.Page(query.Apply(s.snapshot(), spec), 1, limit)))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest)
		return
	}
	spec, err := query.FromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	spec.Search = q
	writeJSON(w, nonNil(query.Apply(s.snapshot(), spec)))
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, l := range s.snapshot() {
		if l.ID == id {
			writeJSON(w, l)
			return
		}
	}
	writeError(w, http.StatusNotFound)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "series")
	s.mu.Lock()
	series, ok := s.series[name]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound)
		return
	}
	writeJSON(w, series)
}

func nonNil(ls []launch.Launch) []launch.Launch {
	if ls == nil {
		return []launch.Launch{}
	}
	return ls
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": status, "message": http.StatusText(status)})
}
