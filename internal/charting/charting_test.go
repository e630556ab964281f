package charting

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/services/charts"
	"TradeMind/pkg/dom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canvasDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(`<html><body><div class="chart-container"><canvas id="survivalChart"></canvas></div></body></html>`)
	require.NoError(t, err)
	return doc
}

func TestNewBackend(t *testing.T) {
	c, err := New("", 0, 0)
	require.NoError(t, err)
	assert.IsType(t, &ChartJS{}, c)

	c, err = New(BackendRaster, 640, 320)
	require.NoError(t, err)
	assert.IsType(t, &Raster{}, c)

	_, err = New("svg", 0, 0)
	assert.Error(t, err)
}

func TestChartJSEmbedsConfig(t *testing.T) {
	doc := canvasDoc(t)
	target, ok := doc.GetElementByID("survivalChart")
	require.True(t, ok)

	require.NoError(t, NewChartJS().Draw(context.Background(), target, charts.SurvivalChartConfig()))

	blocks := doc.GetElementsByClassName(ConfigClass)
	require.Len(t, blocks, 1)
	ref, _ := blocks[0].Attr("data-target")
	assert.Equal(t, "survivalChart", ref)

	var cfg models.ChartConfig
	require.NoError(t, json.Unmarshal([]byte(blocks[0].Text()), &cfg))
	assert.Equal(t, charts.SurvivalChartConfig().Data, cfg.Data)
}

func TestChartJSKeepsNullPoints(t *testing.T) {
	doc := canvasDoc(t)
	target, _ := doc.GetElementByID("survivalChart")

	cfg, err := charts.Config(charts.NameTrading, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, NewChartJS().Draw(context.Background(), target, cfg))

	text := doc.GetElementsByClassName(ConfigClass)[0].Text()
	assert.Contains(t, text, `"data":[null,null`)
	assert.Contains(t, doc.String(), `<script type="application/json" class="chart-config" data-target="survivalChart">{`)
}

func TestRasterRenderPNG(t *testing.T) {
	for _, name := range []string{charts.NameEmotion, charts.NameTrading, charts.NameSurvival} {
		cfg, err := charts.Config(name, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, NewRaster(640, 320).RenderPNG(cfg, &buf), name)

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 320, img.Bounds().Dy())
	}
}

func TestRasterDrawReplacesCanvas(t *testing.T) {
	doc := canvasDoc(t)
	target, _ := doc.GetElementByID("survivalChart")

	require.NoError(t, NewRaster(0, 0).Draw(context.Background(), target, charts.SurvivalChartConfig()))

	imgs := doc.GetElementsByClassName("chart-image")
	require.Len(t, imgs, 1)
	src, _ := imgs[0].Attr("src")
	assert.True(t, strings.HasPrefix(src, "data:image/png;base64,"))
	assert.Equal(t, "none", target.Style("display"))
}

func TestRasterRejectsInvalidConfig(t *testing.T) {
	cfg := charts.EmotionChartConfig()
	cfg.Data.Datasets[0].Data = cfg.Data.Datasets[0].Data[:3]
	assert.Error(t, NewRaster(0, 0).RenderPNG(cfg, &bytes.Buffer{}))
}

func TestYRange(t *testing.T) {
	r := yRange(charts.EmotionChartConfig())
	require.NotNil(t, r)
	assert.Equal(t, 0.0, r.GetMin())
	assert.Equal(t, 100.0, r.GetMax())

	cfg, _ := charts.Config(charts.NameTrading, rand.New(rand.NewSource(1)))
	assert.Nil(t, yRange(cfg))
}

func TestXTicksThinLongAxes(t *testing.T) {
	labels := make([]string, 100)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}
	ticks := xTicks(labels)
	assert.Len(t, ticks, 10)
	assert.Len(t, xTicks([]string{"0", "20", "40"}), 3)
}

func TestRenderEChartsPage(t *testing.T) {
	cfg, err := charts.Config(charts.NameTrading, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderEChartsPage(cfg, "Trading", &buf))
	page := buf.String()
	assert.Contains(t, page, "echarts")
	assert.Contains(t, page, "20-day MA")
	assert.Contains(t, page, `"-"`)
}
