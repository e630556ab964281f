package charts

import (
	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
)

type marker struct {
	kind, text string
	index      int
}

var tradeMarkers = []marker{
	{"buy", "Buy", 35},
	{"sell", "Sell", 70},
}

// ComputeAnnotations places the Buy and Sell markers. Horizontal offset is
// the day index as a percentage; vertical offset is measured down from the
// top relative to the series maximum. Markers past the end are dropped.
func ComputeAnnotations(prices models.PriceSeries) []models.Annotation {
	peak := prices.Max()
	out := make([]models.Annotation, 0, len(tradeMarkers))
	for _, m := range tradeMarkers {
		if m.index >= len(prices) || peak == 0 {
			continue
		}
		out = append(out, models.Annotation{
			Kind:    m.kind,
			Text:    m.text,
			Index:   m.index,
			LeftPct: float64(m.index),
			TopPct:  100 - prices[m.index]/peak*100,
		})
	}
	return out
}

// AddTradingAnnotations appends a positioned marker div per annotation to
// the chart's container.
func AddTradingAnnotations(doc repository.Document, target repository.Element, prices models.PriceSeries) []models.Annotation {
	parent, ok := target.Parent()
	if !ok {
		return nil
	}
	anns := ComputeAnnotations(prices)
	for _, a := range anns {
		div := doc.CreateElement("div")
		div.SetAttr("class", "chart-annotation "+a.Kind)
		div.SetText(a.Text)
		div.SetStyle("left", models.FormatNumber(a.LeftPct)+"%")
		div.SetStyle("top", models.FormatNumber(a.TopPct)+"%")
		parent.AppendChild(div)
	}
	return anns
}
