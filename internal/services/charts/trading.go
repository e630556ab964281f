package charts

import (
	"context"
	"strconv"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
	"TradeMind/internal/services/series"
)

const (
	TradingDays = 100
	fastPeriod  = 20
	slowPeriod  = 50
)

// TradingChartConfig plots prices with their 20- and 50-day averages.
func TradingChartConfig(prices models.PriceSeries) *models.ChartConfig {
	labels := make([]string, len(prices))
	for i := range prices {
		labels[i] = strconv.Itoa(i + 1)
	}
	line := func(label, color string, data []models.NullFloat) models.Dataset {
		return models.Dataset{
			Label:       label,
			Data:        data,
			BorderColor: color,
			BorderWidth: 2,
			PointRadius: models.Float(0),
		}
	}
	price := line("Price", "#333", models.Floats(prices...))
	price.BackgroundColor = "rgba(51, 51, 51, 0.1)"

	return &models.ChartConfig{
		Type: models.ChartLine,
		Data: models.ChartData{
			Labels: labels,
			Datasets: []models.Dataset{
				price,
				line("20-day MA", "#4a6fa5", series.CalculateSMA(prices, fastPeriod)),
				line("50-day MA", "#4cb5ae", series.CalculateSMA(prices, slowPeriod)),
			},
		},
		Options: models.ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: models.PluginOptions{
				Tooltip: models.Tooltip{Mode: "index", Intersect: models.Bool(false)},
				Legend:  models.Legend{Position: "top"},
			},
			Scales: map[string]models.Scale{
				"x": {Title: &models.ScaleTitle{Display: true, Text: "Days"}},
				"y": {Title: &models.ScaleTitle{Display: true, Text: "Price"}},
			},
			Interaction: &models.Interaction{Intersect: false, Mode: "index"},
		},
	}
}

// InitTradingChart generates a fresh price path, draws it onto #tradingChart
// and overlays the buy/sell markers. The markers are added only when the
// chart was drawn.
func InitTradingChart(ctx context.Context, doc repository.Document, src series.Source, charter service.Charter) (bool, error) {
	target, ok := doc.GetElementByID(TradingChartID)
	if !ok {
		return false, nil
	}
	prices := series.GeneratePriceData(src, TradingDays)
	if ok, err := draw(ctx, charter, target, TradingChartConfig(prices)); !ok {
		return false, err
	}
	AddTradingAnnotations(doc, target, prices)
	return true, nil
}
