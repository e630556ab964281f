// Package charting holds the Charter backends that turn a chart
// configuration into something the page can show.
package charting

import (
	"fmt"

	"TradeMind/internal/domain/repository"
	"TradeMind/internal/domain/service"
)

// ElementFactory creates detached elements for a backend to insert.
type ElementFactory func(tag string) repository.Element

const (
	BackendChartJS = "chartjs"
	BackendRaster  = "raster"
)

// New returns the Charter for a configured backend name.
func New(backend string, width, height int) (service.Charter, error) {
	switch backend {
	case "", BackendChartJS:
		return NewChartJS(), nil
	case BackendRaster:
		return NewRaster(width, height), nil
	}
	return nil, fmt.Errorf("unknown chart backend %q", backend)
}
