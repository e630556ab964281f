// Package series generates the synthetic price path and its moving averages.
package series

import "TradeMind/internal/domain/models"

const (
	startPrice = 100.0
	minPrice   = 10.0
	// drift pulls the walk slightly upward: centered steps would use 0.5.
	stepCenter = 0.48
	stepScale  = 3.0

	rallyFrom, rallyTo, rallyBoost       = 30, 40, 0.5
	selloffFrom, selloffTo, selloffDrift = 60, 75, -0.3
)

// Source is a uniform random source on [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// GeneratePriceData returns n prices of a biased random walk starting at 100,
// with a rally between days 31 and 39, a sell-off between days 61 and 74,
// and a price floor of 10.
func GeneratePriceData(src Source, n int) models.PriceSeries {
	if n <= 0 {
		return models.PriceSeries{}
	}
	data := make(models.PriceSeries, n)
	price := startPrice
	data[0] = price
	for i := 1; i < n; i++ {
		price += (src.Float64() - stepCenter) * stepScale
		if i > rallyFrom && i < rallyTo {
			price += rallyBoost
		}
		if i > selloffFrom && i < selloffTo {
			price += selloffDrift
		}
		if price < minPrice {
			price = minPrice
		}
		data[i] = price
	}
	return data
}

// CalculateSMA returns the simple moving average of data over period.
// The result has len(data) entries; the first period-1 are null. A period
// that is not positive or exceeds the data yields all nulls.
func CalculateSMA(data []float64, period int) []models.NullFloat {
	out := make([]models.NullFloat, len(data))
	if period <= 0 || period > len(data) {
		return out
	}
	for i := period - 1; i < len(data); i++ {
		var sum float64
		for j := 0; j < period; j++ {
			sum += data[i-j]
		}
		out[i] = models.Some(sum / float64(period))
	}
	return out
}
