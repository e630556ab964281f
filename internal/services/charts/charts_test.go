package charts

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/pkg/dom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCharter struct {
	drawn map[string]*models.ChartConfig
	err   error
}

func (r *recordingCharter) Draw(_ context.Context, target repository.Element, cfg *models.ChartConfig) error {
	if r.err != nil {
		return r.err
	}
	if r.drawn == nil {
		r.drawn = map[string]*models.ChartConfig{}
	}
	r.drawn[target.ID()] = cfg
	return nil
}

func mustDoc(t *testing.T, body string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString("<html><body>" + body + "</body></html>")
	require.NoError(t, err)
	return doc
}

func TestComputeRiskDisplay(t *testing.T) {
	cases := []struct {
		value    float64
		position float64
		text     string
		color    string
		band     models.RiskBand
	}{
		{0, 0, "0%", ColorSafe, models.RiskSafe},
		{2, 13.333333333333334, "2%", ColorSafe, models.RiskSafe},
		{3, 20, "3%", ColorCaution, models.RiskCaution},
		{5, 33.333333333333336, "5%", ColorCaution, models.RiskCaution},
		{10, 66.66666666666667, "10%", ColorDanger, models.RiskDanger},
		{15, 100, "15%", ColorDanger, models.RiskDanger},
	}
	for _, tc := range cases {
		d := ComputeRiskDisplay(tc.value)
		assert.InDelta(t, tc.position, d.Position, 1e-9, "value %v", tc.value)
		assert.Equal(t, tc.text, d.Text)
		assert.Equal(t, tc.color, d.Color)
		assert.Equal(t, tc.band, d.Band)
	}
	// Same float rendering a browser uses for 3/15*100.
	assert.Equal(t, "20.000000000000004%", ComputeRiskDisplay(3).Left)
	assert.Equal(t, "100%", ComputeRiskDisplay(15).Left)
}

func TestInitRiskMeter(t *testing.T) {
	doc := mustDoc(t, `<input type="range" id="risk-slider" min="0" max="15" value="3">
<div id="risk-indicator"></div><span id="risk-value">1%</span>`)

	d, ok := InitRiskMeter(doc)
	require.True(t, ok)
	assert.Equal(t, 3.0, d.Value)

	indicator, _ := doc.GetElementByID(RiskIndicatorID)
	caption, _ := doc.GetElementByID(RiskValueID)
	assert.Equal(t, "20.000000000000004%", indicator.Style("left"))
	assert.Equal(t, "3%", caption.Text())
	assert.Equal(t, ColorCaution, caption.Style("color"))
}

func TestUpdateRiskMeterRecomputes(t *testing.T) {
	doc := mustDoc(t, `<div id="risk-indicator"></div><span id="risk-value"></span>`)
	for _, v := range []float64{1, 7, 4} {
		_, ok := UpdateRiskMeter(doc, v)
		require.True(t, ok)
	}
	caption, _ := doc.GetElementByID(RiskValueID)
	assert.Equal(t, "4%", caption.Text())
	assert.Equal(t, ColorCaution, caption.Style("color"))
}

func TestRiskMeterMissingElements(t *testing.T) {
	for name, body := range map[string]string{
		"no slider":    `<div id="risk-indicator"></div><span id="risk-value">1%</span>`,
		"no indicator": `<input id="risk-slider" min="0" max="15"><span id="risk-value">1%</span>`,
		"no caption":   `<input id="risk-slider" min="0" max="15"><div id="risk-indicator"></div>`,
	} {
		doc := mustDoc(t, body)
		before := doc.String()
		_, ok := InitRiskMeter(doc)
		assert.False(t, ok, name)
		assert.Equal(t, before, doc.String(), name)
	}
}

func TestSliderValue(t *testing.T) {
	doc := mustDoc(t, `<input id="a" min="0" max="15"><input id="b" min="0" max="15" value="40">
<input id="c"><input id="d" min="0" max="15" value="abc">
<input id="e" min="0" max="15" step="0.5" value="3.3"><input id="f" min="0" max="15" step="any" value="3.3">
<input id="g" min="0" max="15" step="0.5"><input id="h" min="0" max="10" step="4" value="10">`)
	get := func(id string) repository.Element {
		el, ok := doc.GetElementByID(id)
		require.True(t, ok)
		return el
	}
	assert.Equal(t, 8.0, SliderValue(get("a")), "midpoint snaps up to the default step of 1")
	assert.Equal(t, 15.0, SliderValue(get("b")))
	assert.Equal(t, 50.0, SliderValue(get("c")))
	assert.Equal(t, 8.0, SliderValue(get("d")))
	assert.Equal(t, 3.5, SliderValue(get("e")))
	assert.Equal(t, 3.3, SliderValue(get("f")))
	assert.Equal(t, 7.5, SliderValue(get("g")))
	assert.Equal(t, 8.0, SliderValue(get("h")), "snapping past max steps back down")
}

func TestEmotionChartConfig(t *testing.T) {
	cfg := EmotionChartConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Data.Datasets, 2)

	label, ok := cfg.TooltipLabel(1, 2)
	require.True(t, ok)
	assert.Equal(t, "Emotional State: Euphoria/Greed", label)

	label, ok = cfg.TooltipLabel(0, 2)
	require.True(t, ok)
	assert.Equal(t, "Market Price: 90", label)

	assert.Equal(t, "Low", cfg.TickLabel("y", 0))
	assert.Equal(t, "Neutral", cfg.TickLabel("y", 50))
	assert.Equal(t, "High", cfg.TickLabel("y", 100))
	assert.Equal(t, "", cfg.TickLabel("y", 20))
}

func TestEmotionLexiconMismatchRejected(t *testing.T) {
	cfg := EmotionChartConfig()
	cfg.Options.Plugins.Tooltip.LabelLexicons[emotionalStateLabel] = emotionLexicon[:4]
	assert.Error(t, cfg.Validate())
}

func TestSurvivalChartConfig(t *testing.T) {
	cfg := SurvivalChartConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Data.Datasets, 3)
	for _, ds := range cfg.Data.Datasets {
		for i := 1; i < len(ds.Data); i++ {
			assert.LessOrEqual(t, ds.Data[i].Float64, ds.Data[i-1].Float64, ds.Label)
		}
	}
	assert.Equal(t, "Number of Trades", cfg.AxisTitle("x"))
	assert.Equal(t, "Account Survival Probability (%)", cfg.AxisTitle("y"))
}

func TestTradingChartConfig(t *testing.T) {
	cfg, err := Config(NameTrading, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Data.Labels, TradingDays)
	assert.Equal(t, "1", cfg.Data.Labels[0])
	assert.Equal(t, "100", cfg.Data.Labels[99])

	fast, ok := cfg.Dataset("20-day MA")
	require.True(t, ok)
	assert.False(t, fast.Data[18].Valid)
	assert.True(t, fast.Data[19].Valid)

	slow, ok := cfg.Dataset("50-day MA")
	require.True(t, ok)
	assert.False(t, slow.Data[48].Valid)
	assert.True(t, slow.Data[49].Valid)

	_, err = Config("nope", nil)
	assert.Error(t, err)
}

func TestComputeAnnotations(t *testing.T) {
	prices := make(models.PriceSeries, 100)
	for i := range prices {
		prices[i] = 50
	}
	prices[35] = 100
	prices[70] = 25

	anns := ComputeAnnotations(prices)
	require.Len(t, anns, 2)
	assert.Equal(t, models.Annotation{Kind: "buy", Text: "Buy", Index: 35, LeftPct: 35, TopPct: 0}, anns[0])
	assert.Equal(t, models.Annotation{Kind: "sell", Text: "Sell", Index: 70, LeftPct: 70, TopPct: 75}, anns[1])

	assert.Len(t, ComputeAnnotations(prices[:50]), 1)
	assert.Empty(t, ComputeAnnotations(nil))
}

func TestInitTradingChartAddsAnnotations(t *testing.T) {
	doc := mustDoc(t, `<div class="chart-container"><canvas id="tradingChart"></canvas></div>`)
	charter := &recordingCharter{}

	ok, err := InitTradingChart(context.Background(), doc, rand.New(rand.NewSource(1)), charter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, charter.drawn, TradingChartID)

	anns := doc.GetElementsByClassName("chart-annotation")
	require.Len(t, anns, 2)
	assert.True(t, anns[0].HasClass("buy"))
	assert.Equal(t, "35%", anns[0].Style("left"))
	assert.True(t, anns[1].HasClass("sell"))
	assert.Equal(t, "70%", anns[1].Style("left"))
}

func TestInitChartsCharterFailure(t *testing.T) {
	doc := mustDoc(t, `<div><canvas id="tradingChart"></canvas></div><canvas id="emotionChart"></canvas>`)
	charter := &recordingCharter{err: errors.New("boom")}

	ok, err := InitTradingChart(context.Background(), doc, rand.New(rand.NewSource(1)), charter)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Empty(t, doc.GetElementsByClassName("chart-annotation"))

	ok, err = InitEmotionChart(context.Background(), doc, charter)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestInitChartsMissingTargets(t *testing.T) {
	doc := mustDoc(t, `<p>nothing here</p>`)
	charter := &recordingCharter{}
	ctx := context.Background()

	for _, init := range []func() (bool, error){
		func() (bool, error) { return InitEmotionChart(ctx, doc, charter) },
		func() (bool, error) { return InitSurvivalChart(ctx, doc, charter) },
		func() (bool, error) { return InitTradingChart(ctx, doc, rand.New(rand.NewSource(1)), charter) },
	} {
		ok, err := init()
		assert.False(t, ok)
		assert.NoError(t, err)
	}
	assert.Empty(t, charter.drawn)
}
