package models

// RiskBand classifies a per-trade risk percentage.
type RiskBand string

const (
	RiskSafe    RiskBand = "safe"
	RiskCaution RiskBand = "caution"
	RiskDanger  RiskBand = "danger"
)

// RiskDisplay is everything the risk meter shows for one slider value.
type RiskDisplay struct {
	Value    float64  `json:"value"`
	Position float64  `json:"position"` // percent of the meter width
	Left     string   `json:"left"`     // CSS left offset of the indicator
	Text     string   `json:"text"`
	Color    string   `json:"color"`
	Band     RiskBand `json:"band"`
}
