package charts

import (
	"context"
	"fmt"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
	"TradeMind/internal/services/series"
)

func draw(ctx context.Context, charter service.Charter, target repository.Element, cfg *models.ChartConfig) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, fmt.Errorf("chart %s: %w", target.ID(), err)
	}
	if err := charter.Draw(ctx, target, cfg); err != nil {
		return false, fmt.Errorf("draw %s: %w", target.ID(), err)
	}
	return true, nil
}

// Config returns the configuration of a named chart. Only the trading chart
// consumes src.
func Config(name string, src series.Source) (*models.ChartConfig, error) {
	switch name {
	case NameEmotion:
		return EmotionChartConfig(), nil
	case NameTrading:
		return TradingChartConfig(series.GeneratePriceData(src, TradingDays)), nil
	case NameSurvival:
		return SurvivalChartConfig(), nil
	}
	return nil, fmt.Errorf("unknown chart %q", name)
}
