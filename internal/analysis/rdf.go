// Package analysis post-processes suspension trajectories.
package analysis

import (
	"fmt"
	"math"
)

// RDF accumulates a quasi-2D radial distribution function: pair distances
// are measured in 3D with minimum-image wrapping in x and y, but the ideal
// gas normalization is two-dimensional. Appropriate for layers sedimented
// over the wall, where the z extent is thin compared to the box.
type RDF struct {
	Lx, Ly float64
	Bins   int

	dr     float64
	hist   []int64
	frames int
	blobs  int
}

// NewRDF covers radii up to lx/2 with the given number of bins.
func NewRDF(lx, ly float64, bins int) *RDF {
	return &RDF{
		Lx:   lx,
		Ly:   ly,
		Bins: bins,
		dr:   lx / (2.0 * float64(bins)),
		hist: make([]int64, bins),
	}
}

// AddFrame bins all pair distances of one configuration.
func (r *RDF) AddFrame(positions []float64) error {
	n := len(positions) / 3
	if r.frames == 0 {
		r.blobs = n
	} else if n != r.blobs {
		return fmt.Errorf("analysis: frame has %d blobs, previous frames had %d", n, r.blobs)
	}

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			dx := positions[i*3+0] - positions[j*3+0]
			dx -= math.Round(dx/r.Lx) * r.Lx
			dy := positions[i*3+1] - positions[j*3+1]
			dy -= math.Round(dy/r.Ly) * r.Ly
			dz := positions[i*3+2] - positions[j*3+2]

			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			bin := int(dist / r.dr)
			if bin < r.Bins {
				// Each pair counts for both members.
				r.hist[bin] += 2
			}
		}
	}
	r.frames++
	return nil
}

// Compute returns bin-center radii and g(r). The normalization divides by
// the 2D ideal-gas pair count at the layer's areal density.
func (r *RDF) Compute() (radii, g []float64) {
	radii = make([]float64, r.Bins)
	g = make([]float64, r.Bins)
	if r.frames == 0 || r.blobs == 0 {
		return radii, g
	}

	density := float64(r.blobs) / (r.Lx * r.Ly)
	for i := 0; i < r.Bins; i++ {
		rLow := float64(i) * r.dr
		rUp := rLow + r.dr
		nIdeal := math.Pi * density * (rUp*rUp - rLow*rLow)
		radii[i] = (float64(i) + 0.5) * r.dr
		g[i] = float64(r.hist[i]) / (float64(r.frames) * float64(r.blobs) * nIdeal)
	}
	return radii, g
}
