package api

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/phytosim/internal/dynamo"
)

const (
	nickelColor  = "#8C564B"
	biomassColor = "#2CA02C"
	limitColor   = "#D62728"
)

// timeSeriesChart plots nickel on the left axis and biomass, dashed, on a
// second axis to the right.
func timeSeriesChart(traj *dynamo.Trajectory, threshold float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Nickel and biomass over time",
			Subtitle: fmt.Sprintf("safe threshold %g mg/kg", threshold),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (years)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Nickel (mg/kg)"}),
		charts.WithAnimation(false),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Alyssum biomass (kg/ha)"})

	n := traj.Len()
	times := make([]string, n)
	nickel := make([]opts.LineData, n)
	biomass := make([]opts.LineData, n)
	limit := make([]opts.LineData, n)
	for i := 0; i < n; i++ {
		t, x := traj.At(i)
		times[i] = fmt.Sprintf("%.1f", t)
		nickel[i] = opts.LineData{Value: x.N}
		biomass[i] = opts.LineData{Value: x.A}
		limit[i] = opts.LineData{Value: threshold}
	}

	line.SetXAxis(times).
		AddSeries("Nickel (N)", nickel,
			charts.WithLineStyleOpts(opts.LineStyle{Color: nickelColor, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: nickelColor}),
		).
		AddSeries("Safe threshold", limit,
			charts.WithLineStyleOpts(opts.LineStyle{Color: limitColor, Type: "dotted"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: limitColor}),
		).
		AddSeries("Biomass (A)", biomass,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: biomassColor, Width: 2, Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: biomassColor}),
		)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

// phaseChart plots nickel against biomass with both axes numeric.
func phaseChart(traj *dynamo.Trajectory) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Phase plane"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Biomass A (kg/ha)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Nickel N (mg/kg)", Type: "value"}),
		charts.WithAnimation(false),
	)

	points := traj.Phase()
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		data[i] = opts.LineData{Value: []float64{p.A, p.N}}
	}
	line.AddSeries("N vs A", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: nickelColor, Width: 2}),
	)
	return line
}

// renderCharts builds fresh chart objects on every call and writes the page.
func renderCharts(w io.Writer, traj *dynamo.Trajectory, threshold float64) error {
	page := components.NewPage()
	page.PageTitle = "phytosim charts"
	page.AddCharts(timeSeriesChart(traj, threshold), phaseChart(traj))
	return page.Render(w)
}
