// Package echarts renders dashboard snapshots as go-echarts charts.
package echarts

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
)

// viridis is the heatmap palette, low to high.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

const emptySubtitle = "no sightings match the current filters"

// YearChart plots one point per year with at least one sighting. The x axis
// spans the first to last year present; an empty mapping gets a default axis.
func YearChart(years map[int]int, assetsHost string) *charts.Scatter {
	sorted := aggregate.SortedYears(years)
	data := make([]opts.ScatterData, 0, len(sorted))
	for _, yc := range sorted {
		data = append(data, opts.ScatterData{Value: []interface{}{yc.Year, yc.Count}})
	}

	xAxis := opts.XAxis{Type: "value", Name: "Year", NameLocation: "middle", NameGap: 25}
	subtitle := emptySubtitle
	if lo, hi, ok := aggregate.YearExtent(years); ok {
		xAxis.Min = float64(lo)
		xAxis.Max = float64(hi)
		subtitle = fmt.Sprintf("%d-%d", lo, hi)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "UFO Sightings", Width: "100%", Height: "420px", AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Sightings per Year", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Sightings", NameLocation: "middle", NameGap: 40}),
	)
	scatter.AddSeries("sightings", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}

// HeatmapChart draws the full weekday by hour grid. Empty cells are zero.
func HeatmapChart(cells map[aggregate.DayHour]int, assetsHost string) *charts.HeatMap {
	dense := aggregate.DenseDayHour(cells)
	data := make([]opts.HeatMapData, 0, len(dense))
	for _, c := range dense {
		data = append(data, opts.HeatMapData{Value: [3]interface{}{c.Hour, aggregate.WeekdayIndex(c.Weekday), c.Count}})
	}

	hours := make([]string, aggregate.HoursPerDay)
	for h := range hours {
		hours[h] = strconv.Itoa(h)
	}

	// A zero max collapses the color scale.
	maxCount := max(aggregate.MaxCount(cells), 1)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Sightings by Day and Hour"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Hour of Day", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Name:      "Day of the Week",
			Data:      aggregate.Weekdays,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(hours).AddSeries("sightings", data)
	return hm
}

// ShapeChart draws one bar per shape in the order given.
func ShapeChart(shapes []aggregate.ShapeCount, assetsHost string) *charts.Bar {
	names := make([]string, 0, len(shapes))
	data := make([]opts.BarData, 0, len(shapes))
	for _, sc := range shapes {
		names = append(names, sc.Shape)
		data = append(data, opts.BarData{Value: sc.Count})
	}

	title := opts.Title{Title: fmt.Sprintf("Top %d Shapes", aggregate.MaxShapes)}
	if len(shapes) == 0 {
		title.Subtitle = emptySubtitle
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: assetsHost}),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("sightings", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// RenderPage writes an HTML page with every chart for snap.
func RenderPage(w io.Writer, snap dashboard.Snapshot, assetsHost string) error {
	page := components.NewPage()
	page.SetAssetsHost(assetsHost)
	page.AddCharts(
		YearChart(snap.Years, assetsHost),
		HeatmapChart(snap.DayHours, assetsHost),
		ShapeChart(snap.Shapes, assetsHost),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
