package usecase

import (
	"context"
	"time"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
	"TradeMind/internal/services/charts"
	"TradeMind/internal/services/placeholder"
	"TradeMind/internal/services/series"
	"TradeMind/pkg/logger"
)

// Feature names reported by Bootstrap.
const (
	FeatureRiskMeter    = "riskMeter"
	FeatureEmotionChart = "emotionChart"
	FeatureTradingChart = "tradingChart"
	FeatureSurvival     = "survivalChart"
	FeaturePlaceholders = "placeholders"
)

// Capabilities is everything page initialization needs from its host.
// Logger and Metrics may be nil.
type Capabilities struct {
	Document repository.Document
	Rand     series.Source
	Charter  service.Charter
	Images   service.ImageGenerator
	Logger   *logger.Logger
	Metrics  repository.Metrics
}

type FeatureResult struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Error  string `json:"error,omitempty"`
}

// Report describes one bootstrap pass.
type Report struct {
	Features     []FeatureResult     `json:"features"`
	Risk         *models.RiskDisplay `json:"risk,omitempty"`
	Placeholders []string            `json:"placeholders,omitempty"`
}

// Active lists the features that were initialized.
func (r Report) Active() []string {
	var out []string
	for _, f := range r.Features {
		if f.Active {
			out = append(out, f.Name)
		}
	}
	return out
}

// Bootstrap runs every feature initializer against the document, in page
// order. Features whose elements are missing are skipped. A failing
// feature is logged and skipped; the rest still run.
func Bootstrap(ctx context.Context, caps Capabilities) Report {
	log := caps.Logger
	if log == nil {
		log = logger.Nop()
	}
	var rep Report
	record := func(name string, start time.Time, active bool, err error) {
		res := FeatureResult{Name: name, Active: active}
		if err != nil {
			res.Error = err.Error()
			log.Error("feature init failed", logger.String("feature", name), logger.Error(err))
			if caps.Metrics != nil {
				caps.Metrics.RecordError("feature_" + name)
			}
		}
		if caps.Metrics != nil {
			caps.Metrics.RecordFeature(name, active)
			caps.Metrics.RecordLatency("feature_"+name, time.Since(start).Seconds())
		}
		rep.Features = append(rep.Features, res)
	}

	start := time.Now()
	if d, ok := charts.InitRiskMeter(caps.Document); ok {
		rep.Risk = &d
		if caps.Metrics != nil {
			caps.Metrics.RecordRiskReading(string(d.Band), d.Value)
		}
		record(FeatureRiskMeter, start, true, nil)
	} else {
		record(FeatureRiskMeter, start, false, nil)
	}

	if caps.Charter != nil {
		start = time.Now()
		ok, err := charts.InitEmotionChart(ctx, caps.Document, caps.Charter)
		record(FeatureEmotionChart, start, ok, err)

		start = time.Now()
		if caps.Rand != nil {
			ok, err = charts.InitTradingChart(ctx, caps.Document, caps.Rand, caps.Charter)
			record(FeatureTradingChart, start, ok, err)
		} else {
			record(FeatureTradingChart, start, false, nil)
		}

		start = time.Now()
		ok, err = charts.InitSurvivalChart(ctx, caps.Document, caps.Charter)
		record(FeatureSurvival, start, ok, err)
	}

	if caps.Images != nil {
		start = time.Now()
		applied, err := placeholder.CreatePlaceholderImages(ctx, caps.Document, caps.Images)
		rep.Placeholders = applied
		record(FeaturePlaceholders, start, len(applied) > 0, err)
	}

	log.Debug("bootstrap complete", logger.Strings("active", rep.Active()))
	return rep
}
