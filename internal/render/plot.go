package render

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/cwbudde/algo-lti/lti/freq"
	"github.com/cwbudde/algo-lti/lti/sim"
)

// PlotOptions sizes terminal plots.
type PlotOptions struct {
	Height int
	Width  int
}

// DefaultPlotOptions matches an 80-column terminal.
var DefaultPlotOptions = PlotOptions{Height: 10, Width: 80}

// Plot draws data as an ASCII line chart. Non-finite samples become gaps;
// a series with no finite sample renders as an empty string.
func Plot(data []float64, caption string, opts PlotOptions) string {
	clean := make([]float64, len(data))
	finite := false
	for i, v := range data {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			clean[i] = math.NaN()
			continue
		}
		clean[i] = v
		finite = true
	}
	if !finite {
		return ""
	}

	return asciigraph.Plot(clean,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	)
}

// PlotBode draws the magnitude and phase of points, one chart each. The
// phase chart uses unwrapped when it is not nil.
func PlotBode(points []freq.BodePoint, unwrapped []float64, opts PlotOptions) (magnitude, phase string) {
	phases := unwrapped
	if phases == nil {
		phases = freq.Phases(points)
	}

	return Plot(freq.Magnitudes(points), "magnitude [dB] vs log frequency", opts),
		Plot(phases, "phase [rad] vs log frequency", opts)
}

// PlotResponse draws the output of a time response.
func PlotResponse(points []sim.Point, caption string, opts PlotOptions) string {
	return Plot(sim.Values(points), caption, opts)
}
