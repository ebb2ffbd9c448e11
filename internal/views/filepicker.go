package views

import (
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/fsutil"
	"github.com/banshee-data/groundstation/internal/route"
	"github.com/banshee-data/groundstation/internal/store"
)

// FilePicker lists candidate input files for a satellite.
type FilePicker struct {
	catalog   SatelliteCatalog
	fs        fsutil.FileSystem
	dataDir   string
	templates TemplateProvider
}

// NewFilePicker returns a file picker that browses dataDir on fsys.
func NewFilePicker(cat SatelliteCatalog, fsys fsutil.FileSystem, dataDir string, tp TemplateProvider) *FilePicker {
	return &FilePicker{catalog: cat, fs: fsys, dataDir: dataDir, templates: tp}
}

func (*FilePicker) Name() string { return "filepicker" }

type fileRow struct {
	Name     string
	Path     string
	Size     int64
	ModTime  time.Time
	Selected bool
}

type filePickerData struct {
	SatelliteID string
	Satellite   catalog.Satellite
	Known       bool
	DataDir     string
	Files       []fileRow
	Selection   store.Selection
	Redirect    string
	Err         string
}

// Render lists the regular files directly under the data directory. An id
// missing from the catalog renders a notice instead of the listing.
func (v *FilePicker) Render(w io.Writer, p Props) error {
	data := filePickerData{
		SatelliteID: p.Satellite,
		DataDir:     v.dataDir,
		Redirect:    route.Path(route.FilePicker, p.Satellite),
	}

	sat, err := v.catalog.Satellite(p.Satellite)
	switch {
	case errors.Is(err, catalog.ErrUnknownSatellite):
		return v.templates.ExecuteTemplate(w, "filepicker.html", data)
	case err != nil:
		data.Err = err.Error()
		return v.templates.ExecuteTemplate(w, "filepicker.html", data)
	}
	data.Satellite = sat
	data.Known = true

	if p.Store != nil {
		data.Selection = p.Store.GetState().Selection(p.Satellite)
	}

	infos, err := v.fs.ReadDir(v.dataDir)
	if err != nil {
		data.Err = err.Error()
	}
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		path := filepath.Join(v.dataDir, info.Name())
		data.Files = append(data.Files, fileRow{
			Name:     info.Name(),
			Path:     path,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Selected: path == data.Selection.InputFile,
		})
	}

	return v.templates.ExecuteTemplate(w, "filepicker.html", data)
}
