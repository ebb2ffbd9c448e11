package views

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/groundstation/internal/store"
)

const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// ActivitySummary counts applied actions by type and describes the spacing
// between them.
type ActivitySummary struct {
	Types  []store.ActionType
	Counts []int
	// MeanInterval and StdDevInterval are in seconds; zero with fewer than
	// two (mean) or three (stddev) entries.
	MeanInterval   float64
	StdDevInterval float64
}

// SummariseActivity reduces the activity log to per-type counts in a
// stable order.
func SummariseActivity(activity []store.ActivityEntry) ActivitySummary {
	counts := make(map[store.ActionType]int)
	for _, e := range activity {
		counts[e.Type]++
	}

	var sum ActivitySummary
	for t := range counts {
		sum.Types = append(sum.Types, t)
	}
	sort.Slice(sum.Types, func(i, j int) bool { return sum.Types[i] < sum.Types[j] })
	for _, t := range sum.Types {
		sum.Counts = append(sum.Counts, counts[t])
	}

	if len(activity) < 2 {
		return sum
	}
	intervals := make([]float64, 0, len(activity)-1)
	for i := 1; i < len(activity); i++ {
		intervals = append(intervals, activity[i].At.Sub(activity[i-1].At).Seconds())
	}
	if len(intervals) == 1 {
		sum.MeanInterval = intervals[0]
		return sum
	}
	sum.MeanInterval, sum.StdDevInterval = stat.MeanStdDev(intervals, nil)
	return sum
}

// RenderActivityChart writes a standalone HTML bar chart of the session's
// applied actions.
func RenderActivityChart(w io.Writer, s store.State) error {
	sum := SummariseActivity(s.Activity)

	labels := make([]string, len(sum.Types))
	data := make([]opts.BarData, len(sum.Counts))
	for i, t := range sum.Types {
		labels[i] = string(t)
		data[i] = opts.BarData{Value: sum.Counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Session activity", Width: "100%", Height: "320px", AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Actions (%d applied)", s.Revision),
			Subtitle: fmt.Sprintf("interval mean=%.1fs stddev=%.1fs", sum.MeanInterval, sum.StdDevInterval),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries("actions", data)

	return bar.Render(w)
}
