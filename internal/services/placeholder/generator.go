// Package placeholder draws the stand-in illustrations for the perception
// and reality images and swaps them into the page as data URLs.
package placeholder

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/pkg/cache"
	"TradeMind/pkg/logger"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	DefaultSize  = 300
	circleRadius = 100
	fontSize     = 24
	// The rasterizer scales glyphs by size*dpi in 26.6 fixed point, so 64
	// makes one point one pixel.
	pixelDPI = 64

	dataURLPrefix = "data:image/png;base64,"
	cachePrefix   = "placeholder"
)

var (
	fontOnce sync.Once
	boldFont *truetype.Font
	fontErr  error
)

func labelFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, fontErr
}

// Generator renders placeholder specs to PNG. Results are cached by spec
// when a cache is configured.
type Generator struct {
	cache   repository.AssetCache
	metrics repository.Metrics
	logger  *logger.Logger
}

func NewGenerator(c repository.AssetCache, m repository.Metrics, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{cache: c, metrics: m, logger: log}
}

func (g *Generator) Generate(ctx context.Context, spec models.PlaceholderSpec) (models.EncodedImage, error) {
	if spec.Size <= 0 {
		spec.Size = DefaultSize
	}
	key := cache.Key(cachePrefix, spec.Name, spec.Text, spec.Background, spec.Foreground, fmt.Sprint(spec.Size))

	if g.cache != nil {
		b, err := g.cache.Get(ctx, key)
		switch {
		case err == nil:
			g.recordCache(true)
			return encode(b), nil
		case !errors.Is(err, cache.ErrNotFound):
			g.logger.Warn("placeholder cache read failed", logger.String("key", key), logger.Error(err))
		}
		g.recordCache(false)
	}

	b, err := Render(spec)
	if err != nil {
		return models.EncodedImage{}, err
	}
	if g.cache != nil {
		if err := g.cache.Set(ctx, key, b); err != nil {
			g.logger.Warn("placeholder cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return encode(b), nil
}

func (g *Generator) recordCache(hit bool) {
	if g.metrics != nil {
		g.metrics.RecordCacheResult("placeholder", hit)
	}
}

func encode(b []byte) models.EncodedImage {
	return models.EncodedImage{PNG: b, DataURL: dataURLPrefix + base64.StdEncoding.EncodeToString(b)}
}

// Render draws spec: a filled square, a centered circle and centered white
// bold text. The same spec always produces the same bytes.
func Render(spec models.PlaceholderSpec) ([]byte, error) {
	size := spec.Size
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("graphic context: %w", err)
	}
	s := float64(size)
	center := s / 2

	gc.SetFillColor(drawing.ParseColor(spec.Background))
	gc.BeginPath()
	gc.MoveTo(0, 0)
	gc.LineTo(s, 0)
	gc.LineTo(s, s)
	gc.LineTo(0, s)
	gc.Close()
	gc.Fill()

	gc.SetFillColor(drawing.ParseColor(spec.Foreground))
	gc.BeginPath()
	gc.ArcTo(center, center, circleRadius, circleRadius, 0, 2*math.Pi)
	gc.Close()
	gc.Fill()

	if spec.Text != "" {
		f, err := labelFont()
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		gc.SetFont(f)
		gc.SetDPI(pixelDPI)
		gc.SetFontSize(fontSize)
		gc.SetFillColor(drawing.ColorWhite)
		left, top, right, bottom, err := gc.GetStringBounds(spec.Text)
		if err != nil {
			return nil, fmt.Errorf("measure text: %w", err)
		}
		x := center - (left+right)/2
		y := center - (top+bottom)/2
		if _, err := gc.FillStringAt(spec.Text, x, y); err != nil {
			return nil, fmt.Errorf("draw text: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
