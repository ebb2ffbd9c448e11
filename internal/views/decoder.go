package views

import (
	"errors"
	"io"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/route"
	"github.com/banshee-data/groundstation/internal/store"
)

// Decoder shows how a satellite's selected input would be decoded.
type Decoder struct {
	catalog   SatelliteCatalog
	outputDir string
	templates TemplateProvider
}

// NewDecoder returns the decoder view. outputDir is the default product
// root; a per-satellite output path in the store takes precedence.
func NewDecoder(cat SatelliteCatalog, outputDir string, tp TemplateProvider) *Decoder {
	return &Decoder{catalog: cat, outputDir: outputDir, templates: tp}
}

func (*Decoder) Name() string { return "decoder" }

type decoderData struct {
	SatelliteID string
	Satellite   catalog.Satellite
	Known       bool
	Selection   store.Selection
	Decoder     string
	Plan        *catalog.OutputPlan
	Redirect    string
	Err         string
}

// Render shows the datalink, decoder choices and output plan.
func (v *Decoder) Render(w io.Writer, p Props) error {
	data := decoderData{
		SatelliteID: p.Satellite,
		Redirect:    route.Path(route.Decoder, p.Satellite),
	}

	sat, err := v.catalog.Satellite(p.Satellite)
	switch {
	case errors.Is(err, catalog.ErrUnknownSatellite):
		return v.templates.ExecuteTemplate(w, "decoder.html", data)
	case err != nil:
		data.Err = err.Error()
		return v.templates.ExecuteTemplate(w, "decoder.html", data)
	}
	data.Satellite = sat
	data.Known = true

	if p.Store != nil {
		data.Selection = p.Store.GetState().Selection(p.Satellite)
	}

	// Fall back to the datalink's preferred decoder.
	data.Decoder = data.Selection.Decoder
	if data.Decoder == "" && len(sat.Decoders) > 0 {
		data.Decoder = sat.Decoders[0].Kind
	}

	if data.Selection.InputFile != "" {
		outputDir := v.outputDir
		if data.Selection.OutputPath != "" {
			outputDir = data.Selection.OutputPath
		}
		plan := catalog.PlanOutput(data.Selection.InputFile, outputDir)
		data.Plan = &plan
	}

	return v.templates.ExecuteTemplate(w, "decoder.html", data)
}
