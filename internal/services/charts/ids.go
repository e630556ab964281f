// Package charts builds the page's chart configurations and applies them to
// the document: the risk meter, the emotion cycle, the synthetic trading
// chart with its buy/sell markers and the account survival curves.
package charts

// Element ids the initializers look for. A missing id turns the feature off.
const (
	RiskSliderID    = "risk-slider"
	RiskIndicatorID = "risk-indicator"
	RiskValueID     = "risk-value"
	EmotionChartID  = "emotionChart"
	TradingChartID  = "tradingChart"
	SurvivalChartID = "survivalChart"
)

// Chart names used by the HTTP API.
const (
	NameEmotion  = "emotion"
	NameTrading  = "trading"
	NameSurvival = "survival"
)
