//go:build wireinject
// +build wireinject

package di

import (
	"TradeMind/internal/usecase"
	"TradeMind/pkg/config"
	"TradeMind/pkg/server"

	"github.com/google/wire"
)

var renderSet = wire.NewSet(
	// Infrastructure
	ProvideRedisCache,
	ProvideLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideAssetCache,

	// Page rendering
	ProvideCharter,
	ProvideImageGenerator,
	ProvidePageRenderer,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		renderSet,

		// Use cases
		usecase.NewRiskMeter,
		ProvideChartExporter,
		ProvideRateLimiter,

		// Transport
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializePageRenderer wires the renderer alone, for offline rendering.
func InitializePageRenderer(cfg *config.Config) (*usecase.PageRenderer, error) {
	wire.Build(renderSet)
	return &usecase.PageRenderer{}, nil
}
