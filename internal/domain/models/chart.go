package models

import (
	"fmt"
	"strconv"
)

// ChartKind is the chart type understood by the charting backends.
type ChartKind string

const (
	ChartLine ChartKind = "line"
)

// ChartConfig is a declarative chart description in the shape Chart.js expects.
// Behavior that the browser expresses as callbacks (tooltip text, tick text)
// is carried as data so every backend can interpret it.
type ChartConfig struct {
	Type    ChartKind    `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string      `json:"label"`
	Data            []NullFloat `json:"data"`
	BorderColor     string      `json:"borderColor"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	BorderWidth     float64     `json:"borderWidth"`
	PointRadius     *float64    `json:"pointRadius,omitempty"`
	Fill            bool        `json:"fill"`
	Tension         float64     `json:"tension,omitempty"`
}

type ChartOptions struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	Plugins             PluginOptions    `json:"plugins"`
	Scales              map[string]Scale `json:"scales,omitempty"`
	Interaction         *Interaction     `json:"interaction,omitempty"`
}

type PluginOptions struct {
	Tooltip Tooltip `json:"tooltip"`
	Legend  Legend  `json:"legend"`
}

// Tooltip holds hover behavior. LabelLexicons maps a dataset label to the
// text shown for each point of that dataset, indexed by point position.
type Tooltip struct {
	Mode          string              `json:"mode,omitempty"`
	Intersect     *bool               `json:"intersect,omitempty"`
	LabelLexicons map[string][]string `json:"labelLexicons,omitempty"`
}

type Legend struct {
	Position string `json:"position"`
}

type Scale struct {
	Title       *ScaleTitle `json:"title,omitempty"`
	BeginAtZero bool        `json:"beginAtZero,omitempty"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	Ticks       *Ticks      `json:"ticks,omitempty"`
}

type ScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Ticks replaces numeric tick text. Values without a label render blank.
type Ticks struct {
	Labels []TickLabel `json:"labels"`
}

type TickLabel struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type Interaction struct {
	Intersect bool   `json:"intersect"`
	Mode      string `json:"mode"`
}

// Float returns a pointer to v, for optional numeric options.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional boolean options.
func Bool(v bool) *bool { return &v }

// Validate checks the structural preconditions the renderers rely on:
// every dataset spans all labels and every tooltip lexicon matches the
// length of the dataset it labels.
func (c *ChartConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("chart config is nil")
	}
	n := len(c.Data.Labels)
	for _, ds := range c.Data.Datasets {
		if len(ds.Data) != n {
			return fmt.Errorf("dataset %q has %d points, want %d", ds.Label, len(ds.Data), n)
		}
	}
	for label, lexicon := range c.Options.Plugins.Tooltip.LabelLexicons {
		ds, ok := c.Dataset(label)
		if !ok {
			return fmt.Errorf("tooltip lexicon for unknown dataset %q", label)
		}
		if len(lexicon) != len(ds.Data) {
			return fmt.Errorf("tooltip lexicon for %q has %d entries, dataset has %d", label, len(lexicon), len(ds.Data))
		}
	}
	return nil
}

// Dataset finds a dataset by its label.
func (c *ChartConfig) Dataset(label string) (Dataset, bool) {
	for _, ds := range c.Data.Datasets {
		if ds.Label == label {
			return ds, true
		}
	}
	return Dataset{}, false
}

// TooltipLabel returns the hover text for one point: "<label>: <lexicon entry>"
// for datasets with a lexicon, "<label>: <value>" otherwise. Null points and
// out-of-range indices have no tooltip.
func (c *ChartConfig) TooltipLabel(datasetIndex, dataIndex int) (string, bool) {
	if datasetIndex < 0 || datasetIndex >= len(c.Data.Datasets) {
		return "", false
	}
	ds := c.Data.Datasets[datasetIndex]
	if dataIndex < 0 || dataIndex >= len(ds.Data) || !ds.Data[dataIndex].Valid {
		return "", false
	}
	if lexicon, ok := c.Options.Plugins.Tooltip.LabelLexicons[ds.Label]; ok {
		if dataIndex >= len(lexicon) {
			return "", false
		}
		return ds.Label + ": " + lexicon[dataIndex], true
	}
	return ds.Label + ": " + FormatNumber(ds.Data[dataIndex].Float64), true
}

// TickLabel returns the text drawn for a tick value on the given axis.
// Axes without tick labels print the number itself.
func (c *ChartConfig) TickLabel(axis string, value float64) string {
	scale, ok := c.Options.Scales[axis]
	if !ok || scale.Ticks == nil {
		return FormatNumber(value)
	}
	for _, t := range scale.Ticks.Labels {
		if t.Value == value {
			return t.Label
		}
	}
	return ""
}

// AxisTitle returns the displayed title of an axis, or "".
func (c *ChartConfig) AxisTitle(axis string) string {
	scale, ok := c.Options.Scales[axis]
	if !ok || scale.Title == nil || !scale.Title.Display {
		return ""
	}
	return scale.Title.Text
}

// FormatNumber prints a float the way a browser stringifies a number.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
