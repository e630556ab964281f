package charts

import (
	"context"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
)

type survivalCurve struct {
	label string
	data  []float64
	line  string
	fill  string
}

var survivalCurves = []survivalCurve{
	{"1% Risk Per Trade", []float64{100, 98, 95, 93, 90, 88}, "#4caf50", "rgba(76, 175, 80, 0.1)"},
	{"5% Risk Per Trade", []float64{100, 85, 70, 55, 40, 25}, "#ff9800", "rgba(255, 152, 0, 0.1)"},
	{"10% Risk Per Trade", []float64{100, 65, 40, 20, 5, 0}, "#f44336", "rgba(244, 67, 54, 0.1)"},
}

// SurvivalChartConfig compares account survival over 100 trades at three
// per-trade risk levels.
func SurvivalChartConfig() *models.ChartConfig {
	datasets := make([]models.Dataset, 0, len(survivalCurves))
	for _, c := range survivalCurves {
		datasets = append(datasets, models.Dataset{
			Label:           c.label,
			Data:            models.Floats(c.data...),
			BorderColor:     c.line,
			BackgroundColor: c.fill,
			BorderWidth:     3,
			Fill:            true,
		})
	}
	return &models.ChartConfig{
		Type: models.ChartLine,
		Data: models.ChartData{
			Labels:   []string{"0", "20", "40", "60", "80", "100"},
			Datasets: datasets,
		},
		Options: models.ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: models.PluginOptions{
				Tooltip: models.Tooltip{Mode: "index", Intersect: models.Bool(false)},
				Legend:  models.Legend{Position: "top"},
			},
			Scales: map[string]models.Scale{
				"x": {Title: &models.ScaleTitle{Display: true, Text: "Number of Trades"}},
				"y": {
					Title: &models.ScaleTitle{Display: true, Text: "Account Survival Probability (%)"},
					Min:   models.Float(0),
					Max:   models.Float(100),
				},
			},
			Interaction: &models.Interaction{Intersect: false, Mode: "index"},
		},
	}
}

// InitSurvivalChart draws the survival curves onto #survivalChart.
func InitSurvivalChart(ctx context.Context, doc repository.Document, charter service.Charter) (bool, error) {
	target, ok := doc.GetElementByID(SurvivalChartID)
	if !ok {
		return false, nil
	}
	return draw(ctx, charter, target, SurvivalChartConfig())
}
