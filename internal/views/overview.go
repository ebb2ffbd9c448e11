package views

import (
	"io"
	"time"

	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/store"
)

// ActivityChartPath is where the API serves the activity chart the
// overview embeds.
const ActivityChartPath = "/api/charts/activity"

// Overview is the dashboard landing page.
type Overview struct {
	catalog   SatelliteCatalog
	templates TemplateProvider
}

// NewOverview returns the overview view.
func NewOverview(cat SatelliteCatalog, tp TemplateProvider) *Overview {
	return &Overview{catalog: cat, templates: tp}
}

func (*Overview) Name() string { return "overview" }

type overviewRow struct {
	Satellite catalog.Satellite
	Selection store.Selection
	Focused   bool
}

type overviewData struct {
	Rows       []overviewRow
	State      store.State
	Uptime     time.Duration
	ChartPath  string
	CatalogErr string
}

// Render lists the catalog satellites with what the session has selected
// for each.
func (v *Overview) Render(w io.Writer, p Props) error {
	data := overviewData{ChartPath: ActivityChartPath}
	if p.Store != nil {
		data.State = p.Store.GetState()
		data.Uptime = p.Store.Uptime().Round(time.Second)
	}

	sats, err := v.catalog.Satellites()
	if err != nil {
		data.CatalogErr = err.Error()
	}
	for _, s := range sats {
		data.Rows = append(data.Rows, overviewRow{
			Satellite: s,
			Selection: data.State.Selection(s.ID),
			Focused:   data.State.Satellite == s.ID,
		})
	}

	return v.templates.ExecuteTemplate(w, "overview.html", data)
}
