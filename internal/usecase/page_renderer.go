package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"math/rand"
	"time"

	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
	"TradeMind/pkg/dom"
	"TradeMind/pkg/id"
	"TradeMind/pkg/logger"
)

var ErrUnknownPage = errors.New("unknown page")

// Pages in navigation order.
var Pages = []string{"index", "risk", "psychology", "technical"}

var pageTitles = map[string]string{
	"index":      "Perception vs Reality",
	"risk":       "Risk Management",
	"psychology": "Psychological Discipline",
	"technical":  "Technical Analysis",
}

type PageRendererConfig struct {
	// Seed fixes the random source when requests carry none. Zero uses the clock.
	Seed int64
	// RiskValue is the slider's initial position.
	RiskValue float64
}

// PageRenderer turns a page template into finished HTML by running the
// feature initializers over its DOM.
type PageRenderer struct {
	templates map[string]*template.Template
	charter   service.Charter
	images    service.ImageGenerator
	metrics   repository.Metrics
	logger    *logger.Logger
	cfg       PageRendererConfig
}

type RenderedPage struct {
	ID     string
	Page   string
	Seed   int64
	HTML   []byte
	Report Report
}

type pageData struct {
	Page      string
	Title     string
	RenderID  string
	RiskValue string
}

func NewPageRenderer(tfs fs.FS, charter service.Charter, images service.ImageGenerator, metrics repository.Metrics, log *logger.Logger, cfg PageRendererConfig) (*PageRenderer, error) {
	if log == nil {
		log = logger.Nop()
	}
	tmpls := make(map[string]*template.Template, len(Pages))
	for _, p := range Pages {
		t, err := template.ParseFS(tfs, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", p, err)
		}
		tmpls[p] = t
	}
	return &PageRenderer{
		templates: tmpls,
		charter:   charter,
		images:    images,
		metrics:   metrics,
		logger:    log,
		cfg:       cfg,
	}, nil
}

// Render produces one page. A zero seed falls back to the configured one.
func (r *PageRenderer) Render(ctx context.Context, page string, seed int64) (*RenderedPage, error) {
	start := time.Now()
	tmpl, ok := r.templates[page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	if seed == 0 {
		seed = r.cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	renderID := id.New()
	log := r.logger.With(logger.String("render_id", renderID), logger.String("page", page))

	var src bytes.Buffer
	data := pageData{
		Page:      page,
		Title:     pageTitles[page],
		RenderID:  renderID,
		RiskValue: fmt.Sprint(r.cfg.RiskValue),
	}
	if err := tmpl.ExecuteTemplate(&src, "layout", data); err != nil {
		return nil, fmt.Errorf("execute page %s: %w", page, err)
	}
	doc, err := dom.Parse(&src)
	if err != nil {
		return nil, err
	}

	rep := Bootstrap(ctx, Capabilities{
		Document: doc,
		Rand:     rand.New(rand.NewSource(seed)),
		Charter:  r.charter,
		Images:   r.images,
		Logger:   log,
		Metrics:  r.metrics,
	})

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.RecordPageRendered(page)
		r.metrics.RecordLatency("page_render", time.Since(start).Seconds())
	}
	log.Info("page rendered",
		logger.Int64("seed", seed),
		logger.Strings("features", rep.Active()),
		logger.Duration("took", time.Since(start)),
	)
	return &RenderedPage{ID: renderID, Page: page, Seed: seed, HTML: out.Bytes(), Report: rep}, nil
}
