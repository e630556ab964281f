package usecase

import (
	"fmt"
	"math"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/services/charts"
)

// RiskMeter answers slider updates outside a page render.
type RiskMeter struct {
	metrics repository.Metrics
}

func NewRiskMeter(metrics repository.Metrics) *RiskMeter {
	return &RiskMeter{metrics: metrics}
}

// Evaluate computes the meter for value, which must lie in [0, 15].
func (m *RiskMeter) Evaluate(value float64) (models.RiskDisplay, error) {
	if math.IsNaN(value) || value < 0 || value > charts.MaxRisk {
		return models.RiskDisplay{}, fmt.Errorf("risk %v outside [0, %v]", value, charts.MaxRisk)
	}
	d := charts.ComputeRiskDisplay(value)
	if m.metrics != nil {
		m.metrics.RecordRiskReading(string(d.Band), d.Value)
	}
	return d, nil
}
