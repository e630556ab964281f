package charts

import (
	"math"
	"strings"

	"TradeMind/internal/domain/models"
	"TradeMind/internal/domain/repository"
	"TradeMind/pkg/util"
)

const (
	// MaxRisk is the right edge of the meter, in percent risk per trade.
	MaxRisk = 15.0

	safeLimit    = 2.0
	cautionLimit = 5.0

	ColorSafe    = "#4caf50"
	ColorCaution = "#ff9800"
	ColorDanger  = "#f44336"

	defaultSliderMin  = 0.0
	defaultSliderMax  = 100.0
	defaultSliderStep = 1.0
)

// ComputeRiskDisplay maps a risk percentage to the meter's indicator offset,
// caption and color band.
func ComputeRiskDisplay(value float64) models.RiskDisplay {
	position := value / MaxRisk * 100
	d := models.RiskDisplay{
		Value:    value,
		Position: position,
		Left:     models.FormatNumber(position) + "%",
		Text:     models.FormatNumber(value) + "%",
	}
	switch {
	case value <= safeLimit:
		d.Band, d.Color = models.RiskSafe, ColorSafe
	case value <= cautionLimit:
		d.Band, d.Color = models.RiskCaution, ColorCaution
	default:
		d.Band, d.Color = models.RiskDanger, ColorDanger
	}
	return d
}

// SliderValue reads a range input the way a browser does: a missing or
// unparsable value sits at the midpoint, the result is kept in [min, max]
// and snapped to the step grid based at min, ties rounding up.
func SliderValue(slider repository.Element) float64 {
	lo, hi := defaultSliderMin, defaultSliderMax
	if s, ok := slider.Attr("min"); ok {
		lo = util.ParseFloatDefault(s, defaultSliderMin)
	}
	if s, ok := slider.Attr("max"); ok {
		hi = util.ParseFloatDefault(s, defaultSliderMax)
	}
	if hi < lo {
		hi = lo
	}
	mid := lo + (hi-lo)/2
	v := mid
	if s, ok := slider.Attr("value"); ok {
		v = util.ParseFloatDefault(s, mid)
	}
	v = util.Clamp(v, lo, hi)

	step := sliderStep(slider)
	if step == 0 {
		return v
	}
	snapped := lo + math.Floor((v-lo)/step+0.5)*step
	if snapped > hi {
		snapped -= step
	}
	return snapped
}

// sliderStep returns the step attribute, 0 for "any", and 1 when it is
// missing or not a positive number.
func sliderStep(slider repository.Element) float64 {
	s, ok := slider.Attr("step")
	if !ok {
		return defaultSliderStep
	}
	if strings.EqualFold(strings.TrimSpace(s), "any") {
		return 0
	}
	if step := util.ParseFloatDefault(s, defaultSliderStep); step > 0 {
		return step
	}
	return defaultSliderStep
}

// InitRiskMeter paints the meter for the slider's current value and writes
// that value back to the slider. It reports false, leaving the document
// untouched, when the slider, indicator or caption is absent.
func InitRiskMeter(doc repository.Document) (models.RiskDisplay, bool) {
	slider, ok := doc.GetElementByID(RiskSliderID)
	if !ok {
		return models.RiskDisplay{}, false
	}
	indicator, caption, ok := meterElements(doc)
	if !ok {
		return models.RiskDisplay{}, false
	}
	v := SliderValue(slider)
	slider.SetAttr("value", models.FormatNumber(v))
	return paintRiskMeter(indicator, caption, v), true
}

// UpdateRiskMeter moves the indicator and recolors the caption. Both the
// indicator and the caption must exist, otherwise nothing changes.
func UpdateRiskMeter(doc repository.Document, value float64) (models.RiskDisplay, bool) {
	indicator, caption, ok := meterElements(doc)
	if !ok {
		return models.RiskDisplay{}, false
	}
	return paintRiskMeter(indicator, caption, value), true
}

func meterElements(doc repository.Document) (indicator, caption repository.Element, ok bool) {
	if indicator, ok = doc.GetElementByID(RiskIndicatorID); !ok {
		return nil, nil, false
	}
	if caption, ok = doc.GetElementByID(RiskValueID); !ok {
		return nil, nil, false
	}
	return indicator, caption, true
}

func paintRiskMeter(indicator, caption repository.Element, value float64) models.RiskDisplay {
	d := ComputeRiskDisplay(value)
	indicator.SetStyle("left", d.Left)
	caption.SetText(d.Text)
	caption.SetStyle("color", d.Color)
	return d
}
