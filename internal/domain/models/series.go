package models

// PriceSeries is a generated sequence of prices, indexed from the first day.
type PriceSeries []float64

// Max returns the highest price, or 0 for an empty series.
func (s PriceSeries) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Annotation is a labeled marker positioned over a chart in percent of its box.
type Annotation struct {
	Kind    string  `json:"kind"` // "buy" | "sell"
	Text    string  `json:"text"`
	Index   int     `json:"index"`
	LeftPct float64 `json:"left_pct"`
	TopPct  float64 `json:"top_pct"`
}
