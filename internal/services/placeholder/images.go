package placeholder

import (
	"context"
	"fmt"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
)

var specs = []models.PlaceholderSpec{
	{Name: "perception", Text: "Easy Money", Background: "#ffebee", Foreground: "#e74c3c", Size: DefaultSize},
	{Name: "reality", Text: "Complex Reality", Background: "#e8f5e9", Foreground: "#2ecc71", Size: DefaultSize},
}

// Specs lists the page's placeholder categories.
func Specs() []models.PlaceholderSpec {
	return append([]models.PlaceholderSpec(nil), specs...)
}

// Spec finds a category by name.
func Spec(name string) (models.PlaceholderSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return models.PlaceholderSpec{}, false
}

// CreatePlaceholderImages fills every ".<name>-img" element with its
// generated image. Categories without matching elements are not drawn.
// It returns the categories that were applied.
func CreatePlaceholderImages(ctx context.Context, doc repository.Document, gen service.ImageGenerator) ([]string, error) {
	var applied []string
	for _, spec := range specs {
		ok, err := CreateCanvasImage(ctx, doc, gen, spec)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, spec.Name)
		}
	}
	return applied, nil
}

// CreateCanvasImage applies one category.
func CreateCanvasImage(ctx context.Context, doc repository.Document, gen service.ImageGenerator, spec models.PlaceholderSpec) (bool, error) {
	targets := doc.GetElementsByClassName(spec.Name + "-img")
	if len(targets) == 0 {
		return false, nil
	}
	img, err := gen.Generate(ctx, spec)
	if err != nil {
		return false, fmt.Errorf("placeholder %s: %w", spec.Name, err)
	}
	for _, el := range targets {
		el.SetAttr("src", img.DataURL)
	}
	return true, nil
}
