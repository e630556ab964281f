package models

// Requests for the page HTTP endpoints.

type PageRequest struct {
	Page string `param:"page" json:"page" default:"index" validate:"oneof=index risk psychology technical"`
	Seed int64  `query:"seed" json:"seed" validate:"gte=0"`
}

type RiskMeterRequest struct {
	Value float64 `query:"value" json:"value" validate:"gte=0,lte=15"`
}

type ChartRequest struct {
	Name   string `param:"name" json:"name" validate:"required,oneof=emotion trading survival"`
	Format string `query:"format" json:"format" default:"json" validate:"oneof=json png echarts"`
	Seed   int64  `query:"seed" json:"seed" validate:"gte=0"`
}

type PlaceholderRequest struct {
	Name string `param:"name" json:"name" validate:"required,oneof=perception reality"`
}

// RiskMessage is one slider update on the risk websocket.
type RiskMessage struct {
	Value *float64 `json:"value" validate:"required,gte=0,lte=15"`
}

// RiskReply answers a RiskMessage; Error is set instead of the display on bad input.
type RiskReply struct {
	*RiskDisplay
	Error string `json:"error,omitempty"`
}
