package charts

import (
	"context"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
)

const emotionalStateLabel = "Emotional State"

var (
	emotionStages  = []string{"Entry", "Initial Profit", "Peak", "Decline", "Bottom", "Recovery"}
	emotionMarket  = []float64{50, 70, 90, 60, 30, 45}
	emotionState   = []float64{60, 80, 95, 40, 20, 55}
	emotionLexicon = []string{
		"Cautious Optimism",
		"Excitement",
		"Euphoria/Greed",
		"Anxiety/Denial",
		"Fear/Panic",
		"Acceptance/Hope",
	}
)

// EmotionChartConfig is the market-price versus emotional-state cycle.
// Hovering the emotional curve names the feeling instead of the number.
func EmotionChartConfig() *models.ChartConfig {
	return &models.ChartConfig{
		Type: models.ChartLine,
		Data: models.ChartData{
			Labels: append([]string(nil), emotionStages...),
			Datasets: []models.Dataset{
				{
					Label:           "Market Price",
					Data:            models.Floats(emotionMarket...),
					BorderColor:     "#4a6fa5",
					BackgroundColor: "rgba(74, 111, 165, 0.1)",
					BorderWidth:     3,
					Fill:            true,
					Tension:         0.4,
				},
				{
					Label:           emotionalStateLabel,
					Data:            models.Floats(emotionState...),
					BorderColor:     "#9b59b6",
					BackgroundColor: "rgba(155, 89, 182, 0.1)",
					BorderWidth:     3,
					Fill:            true,
					Tension:         0.4,
				},
			},
		},
		Options: models.ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: models.PluginOptions{
				Tooltip: models.Tooltip{
					LabelLexicons: map[string][]string{
						emotionalStateLabel: append([]string(nil), emotionLexicon...),
					},
				},
				Legend: models.Legend{Position: "top"},
			},
			Scales: map[string]models.Scale{
				"y": {
					BeginAtZero: true,
					Max:         models.Float(100),
					Ticks: &models.Ticks{Labels: []models.TickLabel{
						{Value: 0, Label: "Low"},
						{Value: 50, Label: "Neutral"},
						{Value: 100, Label: "High"},
					}},
				},
			},
			Interaction: &models.Interaction{Intersect: false, Mode: "index"},
		},
	}
}

// InitEmotionChart draws the emotion cycle onto #emotionChart.
func InitEmotionChart(ctx context.Context, doc repository.Document, charter service.Charter) (bool, error) {
	target, ok := doc.GetElementByID(EmotionChartID)
	if !ok {
		return false, nil
	}
	return draw(ctx, charter, target, EmotionChartConfig())
}
