// Package metrics provides run observables for blob suspensions.
package metrics

import (
	"math"

	"github.com/dianalyx/RigidMultiblobsWall/internal/sim"
)

// MeanHeight averages the blob height above the wall over the run.
type MeanHeight struct {
	name    string
	samples int
	total   float64
}

func NewMeanHeight() *MeanHeight {
	return &MeanHeight{name: "mean_height"}
}

func (m *MeanHeight) Name() string { return m.name }

func (m *MeanHeight) Observe(x, v sim.State, t float64) {
	n := x.Blobs()
	if n == 0 {
		return
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += x[i*3+2]
	}
	m.total += sum / float64(n)
	m.samples++
}

func (m *MeanHeight) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanHeight) Reset() {
	m.samples = 0
	m.total = 0
}

// WallGap tracks the smallest surface-to-wall distance seen during a run.
// A value approaching zero warns that the run is drifting toward the
// singular on-wall configuration.
type WallGap struct {
	name   string
	radius float64
	min    float64
	seen   bool
}

func NewWallGap(radius float64) *WallGap {
	return &WallGap{name: "min_wall_gap", radius: radius}
}

func (w *WallGap) Name() string { return w.name }

func (w *WallGap) Observe(x, v sim.State, t float64) {
	for i := 0; i < x.Blobs(); i++ {
		gap := x[i*3+2] - w.radius
		if !w.seen || gap < w.min {
			w.min = gap
			w.seen = true
		}
	}
}

func (w *WallGap) Value() float64 {
	if !w.seen {
		return math.Inf(1)
	}
	return w.min
}

func (w *WallGap) Reset() {
	w.min = 0
	w.seen = false
}

// MaxSpeed records the largest single-blob speed over the run, a cheap
// stability indicator for the timestep choice.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(x, v sim.State, t float64) {
	for i := 0; i < v.Blobs(); i++ {
		vx, vy, vz := v[i*3+0], v[i*3+1], v[i*3+2]
		speed := math.Sqrt(vx*vx + vy*vy + vz*vz)
		if speed > m.max {
			m.max = speed
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
