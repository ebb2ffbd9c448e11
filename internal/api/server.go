// Package api serves the dashboard's JSON, form and event-stream endpoints
// under /api/.
package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/fsutil"
	"github.com/banshee-data/groundstation/internal/httputil"
	"github.com/banshee-data/groundstation/internal/monitoring"
	"github.com/banshee-data/groundstation/internal/store"
	"github.com/banshee-data/groundstation/internal/timeutil"
	"github.com/banshee-data/groundstation/internal/version"
	"github.com/banshee-data/groundstation/internal/views"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// DefaultKeepalive is how often an idle event stream is pinged.
const DefaultKeepalive = 15 * time.Second

// Catalog is the catalog surface the API reads.
type Catalog interface {
	Satellites() ([]catalog.Satellite, error)
	Satellite(id string) (catalog.Satellite, error)
}

type Server struct {
	store     *store.Store
	catalog   Catalog
	fs        fsutil.FileSystem
	dataDir   string
	clock     timeutil.Clock
	keepalive time.Duration
}

// NewServer returns an API server over the session store. select_file
// dispatches must name an existing file under dataDir on fsys.
func NewServer(s *store.Store, cat Catalog, fsys fsutil.FileSystem, dataDir string) *Server {
	return &Server{
		store:     s,
		catalog:   cat,
		fs:        fsys,
		dataDir:   dataDir,
		clock:     timeutil.RealClock{},
		keepalive: DefaultKeepalive,
	}
}

// SetClock replaces the clock driving event-stream keepalives.
func (s *Server) SetClock(c timeutil.Clock) {
	s.clock = c
}

// SetKeepalive sets the event-stream ping interval; non-positive values
// keep the current interval.
func (s *Server) SetKeepalive(d time.Duration) {
	if d > 0 {
		s.keepalive = d
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux returns a mux with every /api/ route registered. Callers mount
// the dashboard shell at "/" on the same mux.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.health)
	mux.HandleFunc("/api/state", s.showState)
	mux.HandleFunc("/api/dispatch", s.dispatch)
	mux.HandleFunc("/api/events", s.events)
	mux.HandleFunc("/api/catalog", s.listSatellites)
	mux.HandleFunc("/api/charts/activity", s.activityChart)
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "no such endpoint")
	})
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	state := s.store.GetState()
	httputil.WriteJSONOK(w, map[string]interface{}{
		"status":     "ok",
		"version":    version.String(),
		"session_id": state.SessionID,
		"revision":   state.Revision,
		"uptime":     s.store.Uptime().Round(time.Second).String(),
	})
}

func (s *Server) showState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	httputil.WriteJSONOK(w, s.store.GetState())
}

func (s *Server) listSatellites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}
	sats, err := s.catalog.Satellites()
	if err != nil {
		monitoring.Logf("list satellites: %v", err)
		httputil.InternalServerError(w, "failed to read catalog")
		return
	}
	httputil.WriteJSONOK(w, sats)
}

func (s *Server) activityChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w, http.MethodGet)
		return
	}

	var buf bytes.Buffer
	if err := views.RenderActivityChart(&buf, s.store.GetState()); err != nil {
		httputil.InternalServerError(w, "failed to render chart: "+err.Error())
		return
	}
	httputil.WriteHTML(w, http.StatusOK, buf.Bytes())
}
