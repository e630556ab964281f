package charting

import (
	"context"
	"encoding/json"
	"fmt"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/pkg/dom"
)

// ConfigClass marks the JSON blocks the browser bootstrap script picks up.
const ConfigClass = "chart-config"

// ChartJS leaves drawing to Chart.js in the browser. It serializes the
// configuration into a JSON script block next to the canvas; the page
// script instantiates the chart from it.
type ChartJS struct {
	newElement ElementFactory
}

func NewChartJS() *ChartJS { return &ChartJS{newElement: dom.NewElement} }

func (c *ChartJS) Draw(_ context.Context, target repository.Element, cfg *models.ChartConfig) error {
	parent, ok := target.Parent()
	if !ok {
		return fmt.Errorf("canvas %q has no container", target.ID())
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal chart config: %w", err)
	}
	script := c.newElement("script")
	script.SetAttr("type", "application/json")
	script.SetAttr("class", ConfigClass)
	script.SetAttr("data-target", target.ID())
	script.SetText(string(b))
	parent.AppendChild(script)
	return nil
}
