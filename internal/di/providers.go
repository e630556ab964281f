package di

import (
	"fmt"
	"time"

	"TradeMind/internal/charting"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
	"TradeMind/internal/handler/api"
	"TradeMind/internal/service/ratelimit"
	"TradeMind/internal/services/placeholder"
	"TradeMind/internal/usecase"
	"TradeMind/pkg/cache"
	"TradeMind/pkg/config"
	xhttp "TradeMind/pkg/http"
	"TradeMind/pkg/logger"
	"TradeMind/pkg/metrics"
	"TradeMind/pkg/server"
	"TradeMind/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideRedisCache connects to Redis when enabled. A nil cache means Redis is off.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisTTL(cfg.Cache.TTL),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideLogger builds the app logger and, when configured, its collector.
func ProvideLogger(cfg *config.Config, rc *cache.RedisCache) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	cc := cfg.Log.Collector
	if cc.Enabled {
		col := &logger.CollectionConfig{
			FlushEvery:  cc.Interval,
			MaxDistinct: cc.Threshold,
			Topic:       cc.Topic,
			Retain:      cc.Retain,
		}
		if cc.Publish && rc != nil {
			col.Publisher = rc
		}
		l.AddCollector(col)
	}
	return l, nil
}

// ProvideRegistry creates the registry behind /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegistry(reg)
}

// ProvideAssetCache puts an in-memory cache in front of Redis, or uses memory alone.
func ProvideAssetCache(cfg *config.Config, rc *cache.RedisCache) cache.Store {
	mem := []cache.MemoryOption{
		cache.WithMemoryMaxSize(cfg.Cache.MemoryItems),
		cache.WithMemoryTTL(cfg.Cache.TTL),
	}
	if rc == nil {
		return cache.NewMemoryCache(mem...)
	}
	return cache.NewLayeredCache(rc, mem...)
}

// ProvideCharter picks the configured chart backend.
func ProvideCharter(cfg *config.Config) (service.Charter, error) {
	return charting.New(cfg.Charts.Backend, cfg.Charts.Width, cfg.Charts.Height)
}

// ProvideImageGenerator creates the cached placeholder generator.
func ProvideImageGenerator(store cache.Store, m repository.Metrics, l *logger.Logger) service.ImageGenerator {
	return placeholder.NewGenerator(store, m, l)
}

// ProvidePageRenderer parses the embedded page templates.
func ProvidePageRenderer(
	cfg *config.Config,
	charter service.Charter,
	images service.ImageGenerator,
	m repository.Metrics,
	l *logger.Logger,
) (*usecase.PageRenderer, error) {
	return usecase.NewPageRenderer(web.Templates(), charter, images, m, l, usecase.PageRendererConfig{
		Seed:      cfg.Charts.Seed,
		RiskValue: cfg.Charts.RiskValue,
	})
}

// ProvideChartExporter serves charts outside pages with the raster backend.
func ProvideChartExporter(cfg *config.Config) *usecase.ChartExporter {
	return usecase.NewChartExporter(charting.NewRaster(cfg.Charts.Width, cfg.Charts.Height), cfg.Charts.Seed)
}

// ProvideRateLimiter limits risk meter calls per client.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Risk.RateLimit.Capacity, cfg.Risk.RateLimit.Refill)
}

// ProvideHTTPHandler registers the page routes.
func ProvideHTTPHandler(
	l *logger.Logger,
	renderer *usecase.PageRenderer,
	risk *usecase.RiskMeter,
	exporter *usecase.ChartExporter,
	images service.ImageGenerator,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	return api.NewPagesEchoHandler(l, renderer, risk, exporter, images, limiter)
}

// ProvideHTTPServer configures echo from the server section.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *logger.Logger, reg *prometheus.Registry) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS, cfg.Server.AllowOrigins...),
		xhttp.WithLogger(l),
		xhttp.WithMetrics(metricsPath, reg, cfg.Metrics.SlowThreshold),
		xhttp.WithStatic("/static", web.Static()),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	srv *xhttp.Server,
	store cache.Store,
	limiter *ratelimit.Limiter,
) *server.App {
	app := server.New(cfg, l, srv, store)
	app.SetJanitor(time.Minute, func() {
		if n := limiter.Prune(); n > 0 {
			l.Debug("rate limiter pruned", logger.Int("keys", n))
		}
	})
	return app
}
