package usecase

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"TradeMind/internal/charting"
	"TradeMind/internal/domain/models"
	"TradeMind/internal/services/charts"
)

var chartTitles = map[string]string{
	charts.NameEmotion:  "Market Price vs Emotional State",
	charts.NameTrading:  "Price with 20/50-day Moving Averages",
	charts.NameSurvival: "Account Survival by Risk per Trade",
}

// ChartExporter serves chart configurations outside a page, as JSON, PNG
// or a standalone ECharts page.
type ChartExporter struct {
	raster *charting.Raster
	seed   int64
}

func NewChartExporter(raster *charting.Raster, seed int64) *ChartExporter {
	return &ChartExporter{raster: raster, seed: seed}
}

// Config builds a named chart. A zero seed falls back to the configured one.
func (e *ChartExporter) Config(name string, seed int64) (*models.ChartConfig, error) {
	if seed == 0 {
		seed = e.seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return charts.Config(name, rand.New(rand.NewSource(seed)))
}

func (e *ChartExporter) WritePNG(name string, seed int64, w io.Writer) error {
	cfg, err := e.Config(name, seed)
	if err != nil {
		return err
	}
	return e.raster.RenderPNG(cfg, w)
}

func (e *ChartExporter) WriteECharts(name string, seed int64, w io.Writer) error {
	cfg, err := e.Config(name, seed)
	if err != nil {
		return err
	}
	title, ok := chartTitles[name]
	if !ok {
		return fmt.Errorf("unknown chart %q", name)
	}
	return charting.RenderEChartsPage(cfg, title, w)
}
