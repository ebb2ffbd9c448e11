// Package shell is the dashboard's composition root. It owns the single
// store handle, resolves each navigated path through the route table and
// renders exactly one view per navigation.
package shell

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/banshee-data/groundstation/internal/httputil"
	"github.com/banshee-data/groundstation/internal/monitoring"
	"github.com/banshee-data/groundstation/internal/route"
	"github.com/banshee-data/groundstation/internal/store"
	"github.com/banshee-data/groundstation/internal/version"
	"github.com/banshee-data/groundstation/internal/views"
)

//go:embed templates/layout.html
var layoutFS embed.FS

var layout = template.Must(template.ParseFS(layoutFS, "templates/layout.html"))

var logf = monitoring.Component("shell")

// Frame is what one navigation resolves to: the view to render and the
// props to render it with. Store is the same handle on every frame.
type Frame struct {
	Store *store.Store
	Path  string
	Match route.Match
	// Found is false when no route matched and View is the fallback.
	Found bool
	View  views.View
	Props views.Props
}

// Shell binds navigation to views.
type Shell struct {
	store    *store.Store
	table    *route.Table
	registry *views.Registry

	mu      sync.Mutex
	current string
}

// New returns a shell over s. The shell never replaces s; every frame it
// produces refers to it.
func New(s *store.Store, table *route.Table, registry *views.Registry) *Shell {
	return &Shell{store: s, table: table, registry: registry}
}

// Store returns the state container the shell was built with.
func (sh *Shell) Store() *store.Store {
	return sh.store
}

// Current returns the most recently navigated path.
func (sh *Shell) Current() string {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.current
}

// match resolves an escaped path and unescapes the captured satellite, so
// "/sat%2F7/decoder" is the Decoder for "sat/7".
func (sh *Shell) match(path string) (route.Match, bool) {
	m, ok := sh.table.Match(path)
	if !ok {
		return route.Match{}, false
	}
	satellite, err := url.PathUnescape(m.Satellite)
	if err != nil {
		return route.Match{}, false
	}
	m.Satellite = satellite
	return m, true
}

// Navigate resolves path, in its escaped form, and records it as the
// current location. Calls are serialised so one navigation is fully
// resolved before the next begins.
func (sh *Shell) Navigate(path string) Frame {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.current = path
	f := Frame{Store: sh.store, Path: path}

	m, ok := sh.match(path)
	if !ok {
		f.View = sh.registry.NotFound()
		f.Props = views.Props{Store: sh.store, Path: path}
		return f
	}

	f.Found = true
	f.Match = m
	f.View = sh.registry.For(m.Kind)
	f.Props = views.Props{Satellite: m.Satellite, Store: sh.store, Path: path}
	return f
}

type satelliteLinks struct {
	FilePicker string
	Decoder    string
}

type layoutData struct {
	Title     string
	Body      template.HTML
	Satellite *satelliteLinks
	SessionID string
	Revision  uint64
	Version   string
}

// Render writes the frame's view inside the page layout.
func (f Frame) Render(w io.Writer) error {
	var body bytes.Buffer
	if err := f.View.Render(&body, f.Props); err != nil {
		return err
	}

	state := f.Store.GetState()
	data := layoutData{
		Title:     f.View.Name(),
		Body:      template.HTML(body.String()),
		SessionID: state.SessionID,
		Revision:  state.Revision,
		Version:   version.String(),
	}
	if f.Match.HasSatellite() {
		data.Satellite = &satelliteLinks{
			FilePicker: route.Path(route.FilePicker, f.Match.Satellite),
			Decoder:    route.Path(route.Decoder, f.Match.Satellite),
		}
	}
	return layout.Execute(w, data)
}

// ServeHTTP treats every GET or HEAD as a navigation event.
func (sh *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.MethodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	f := sh.Navigate(r.URL.EscapedPath())

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		logf("render %s (%s): %v", f.Path, f.View.Name(), err)
		httputil.InternalServerError(w, "failed to render view")
		return
	}

	status := http.StatusOK
	if !f.Found {
		status = http.StatusNotFound
	}
	httputil.WriteHTML(w, status, buf.Bytes())
}

// Intercept serves every path the route table matches through the shell and
// passes the rest to next. Mounted in front of a mux it keeps prefixes such
// as /api/ from shadowing satellites named "api".
func (sh *Shell) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sh.match(r.URL.EscapedPath()); ok {
			sh.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
