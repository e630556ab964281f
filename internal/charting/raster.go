package charting

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/pkg/dom"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400

	maxXTicks = 10
)

// Raster draws charts on the server with go-chart and replaces the canvas
// with a PNG image, for clients that run no JavaScript.
type Raster struct {
	width, height int
	newElement    ElementFactory
}

func NewRaster(width, height int) *Raster {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Raster{width: width, height: height, newElement: dom.NewElement}
}

func (r *Raster) Draw(_ context.Context, target repository.Element, cfg *models.ChartConfig) error {
	parent, ok := target.Parent()
	if !ok {
		return fmt.Errorf("canvas %q has no container", target.ID())
	}
	var buf bytes.Buffer
	if err := r.RenderPNG(cfg, &buf); err != nil {
		return err
	}
	img := r.newElement("img")
	img.SetAttr("class", "chart-image")
	img.SetAttr("data-target", target.ID())
	img.SetAttr("alt", chartTitle(cfg))
	img.SetAttr("src", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))
	parent.AppendChild(img)
	target.SetStyle("display", "none")
	return nil
}

// RenderPNG writes cfg as a PNG image.
func (r *Raster) RenderPNG(cfg *models.ChartConfig, w io.Writer) error {
	ch, err := r.build(cfg)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func (r *Raster) build(cfg *models.ChartConfig) (*chart.Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	series := make([]chart.Series, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		xs, ys := points(ds.Data)
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			// go-chart needs a span to draw a line.
			xs = append(xs, xs[0]+0.0001)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style:   datasetStyle(ds),
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("chart has no data")
	}

	n := len(cfg.Data.Labels)
	ch := &chart.Chart{
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  cfg.AxisTitle("x"),
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(n-1), 1)},
			Ticks: xTicks(cfg.Data.Labels),
		},
		YAxis: chart.YAxis{
			Name:  cfg.AxisTitle("y"),
			Range: yRange(cfg),
			Ticks: yTicks(cfg),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}

func points(data []models.NullFloat) (xs, ys []float64) {
	for i, v := range data {
		if !v.Valid {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v.Float64)
	}
	return xs, ys
}

func datasetStyle(ds models.Dataset) chart.Style {
	st := chart.Style{
		StrokeColor: drawing.ParseColor(ds.BorderColor),
		StrokeWidth: ds.BorderWidth,
	}
	if ds.Fill && ds.BackgroundColor != "" {
		st.FillColor = drawing.ParseColor(ds.BackgroundColor)
	}
	if ds.PointRadius == nil || *ds.PointRadius > 0 {
		st.DotColor = st.StrokeColor
		st.DotWidth = 3
		if ds.PointRadius != nil {
			st.DotWidth = *ds.PointRadius
		}
	}
	return st
}

func xTicks(labels []string) []chart.Tick {
	step := 1
	if len(labels) > maxXTicks {
		step = int(math.Ceil(float64(len(labels)) / maxXTicks))
	}
	ticks := make([]chart.Tick, 0, len(labels)/step+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}

// yRange honors explicit bounds. With a single bound the other comes from the data.
func yRange(cfg *models.ChartConfig) chart.Range {
	scale := cfg.Options.Scales["y"]
	lo, hi := dataBounds(cfg)
	if scale.BeginAtZero && lo > 0 {
		lo = 0
	}
	if scale.Min == nil && scale.Max == nil && !scale.BeginAtZero {
		return nil
	}
	if scale.Min != nil {
		lo = *scale.Min
	}
	if scale.Max != nil {
		hi = *scale.Max
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func dataBounds(cfg *models.ChartConfig) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, ds := range cfg.Data.Datasets {
		for _, v := range ds.Data {
			if v.Valid {
				lo = math.Min(lo, v.Float64)
				hi = math.Max(hi, v.Float64)
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}

func yTicks(cfg *models.ChartConfig) []chart.Tick {
	scale, ok := cfg.Options.Scales["y"]
	if !ok || scale.Ticks == nil {
		return nil
	}
	ticks := make([]chart.Tick, 0, len(scale.Ticks.Labels))
	for _, t := range scale.Ticks.Labels {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	return ticks
}

func chartTitle(cfg *models.ChartConfig) string {
	labels := make([]string, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		labels = append(labels, ds.Label)
	}
	return strings.Join(labels, ", ")
}
