// Package viz renders suspension runs in the terminal.
package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/dianalyx/RigidMultiblobsWall/internal/sim"
)

// MeanHeights extracts the per-frame mean blob height of a trajectory.
func MeanHeights(trajectory []sim.State) []float64 {
	out := make([]float64, 0, len(trajectory))
	for _, x := range trajectory {
		n := x.Blobs()
		if n == 0 {
			out = append(out, 0)
			continue
		}
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += x[i*3+2]
		}
		out = append(out, sum/float64(n))
	}
	return out
}

// HeightPlot renders the mean-height curve of a trajectory.
func HeightPlot(trajectory []sim.State, width, height int) string {
	values := MeanHeights(trajectory)
	if len(values) < 2 {
		return "not enough frames to plot"
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("mean blob height"),
	)
}

// SeriesPlot renders an arbitrary series, e.g. g(r) from the analysis
// package.
func SeriesPlot(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return "not enough points to plot"
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
