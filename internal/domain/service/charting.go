package service

import (
	"context"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
)

// Charter draws a chart configuration onto a target surface (usually a
// <canvas>). Implementations decide whether the drawing happens in the
// browser or on the server.
type Charter interface {
	Draw(ctx context.Context, target repository.Element, cfg *models.ChartConfig) error
}

// ImageGenerator produces placeholder bitmaps.
type ImageGenerator interface {
	Generate(ctx context.Context, spec models.PlaceholderSpec) (models.EncodedImage, error)
}
