package charting

import (
	"fmt"
	"io"

	"TradeMind/internal/domain/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// echarts draws gaps for "-" points.
const echartsGap = "-"

// RenderEChartsPage writes a standalone HTML page showing cfg with ECharts.
func RenderEChartsPage(cfg *models.ChartConfig, title string, w io.Writer) error {
	line, err := buildECharts(cfg, title)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render echarts page: %w", err)
	}
	return nil
}

func buildECharts(cfg *models.ChartConfig, title string) (*charts.Line, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	yAxis := opts.YAxis{Name: cfg.AxisTitle("y")}
	if y, ok := cfg.Options.Scales["y"]; ok {
		if y.Min != nil {
			yAxis.Min = *y.Min
		} else if y.BeginAtZero {
			yAxis.Min = 0
		}
		if y.Max != nil {
			yAxis.Max = *y.Max
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: cfg.AxisTitle("x")}),
		charts.WithYAxisOpts(yAxis),
	)

	line.SetXAxis(cfg.Data.Labels)
	for _, ds := range cfg.Data.Datasets {
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Smooth: ds.Tension > 0}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: ds.BorderColor, Width: float32(ds.BorderWidth)}),
		}
		if ds.Fill && ds.BackgroundColor != "" {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: ds.BackgroundColor, Opacity: 1}))
		}
		line.AddSeries(ds.Label, lineData(ds.Data), seriesOpts...)
	}
	return line, nil
}

func lineData(data []models.NullFloat) []opts.LineData {
	out := make([]opts.LineData, len(data))
	for i, v := range data {
		if v.Valid {
			out[i] = opts.LineData{Value: v.Float64}
		} else {
			out[i] = opts.LineData{Value: echartsGap}
		}
	}
	return out
}
