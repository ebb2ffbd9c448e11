// Package views holds the renderable units the shell dispatches to.
//
// Each view renders an HTML fragment from Props. Anything else a view needs
// (the catalog, the data directory) is given to its constructor, so the
// shell only ever deals in a satellite id and the store handle.
package views

import (
	"fmt"
	"io"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/route"
	"github.com/banshee-data/groundstation/internal/store"
)

// Props are the inputs the shell passes to every view.
type Props struct {
	// Satellite is the identifier captured from the path; empty for views
	// that are not scoped to a satellite.
	Satellite string
	// Store is the session state container.
	Store *store.Store
	// Path is the navigated path, for views that echo it back.
	Path string
}

// View renders one page body.
type View interface {
	Name() string
	Render(w io.Writer, p Props) error
}

// SatelliteCatalog is the part of the catalog the views read.
type SatelliteCatalog interface {
	Satellites() ([]catalog.Satellite, error)
	Satellite(id string) (catalog.Satellite, error)
}

// Registry maps every route.ViewKind to its view. It is built with
// NewRegistry so a view cannot be left out.
type Registry struct {
	overview   View
	filePicker View
	decoder    View
	notFound   View
}

// NewRegistry returns a registry over the given views; none may be nil.
func NewRegistry(overview, filePicker, decoder, notFound View) (*Registry, error) {
	for name, v := range map[string]View{
		"overview":    overview,
		"file picker": filePicker,
		"decoder":     decoder,
		"not found":   notFound,
	} {
		if v == nil {
			return nil, fmt.Errorf("views: %s view is nil", name)
		}
	}
	return &Registry{
		overview:   overview,
		filePicker: filePicker,
		decoder:    decoder,
		notFound:   notFound,
	}, nil
}

// For returns the view for kind. A kind outside route.Kinds gets the
// fallback view.
func (r *Registry) For(kind route.ViewKind) View {
	switch kind {
	case route.Overview:
		return r.overview
	case route.FilePicker:
		return r.filePicker
	case route.Decoder:
		return r.decoder
	default:
		return r.notFound
	}
}

// NotFound returns the fallback view rendered for unmatched paths.
func (r *Registry) NotFound() View {
	return r.notFound
}
