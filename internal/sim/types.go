package sim

import "math"

// State is a flat row-major N x 3 array of blob coordinates
// (x0,y0,z0,x1,...). Velocity and force fields share the layout.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Blobs returns the number of blobs encoded in the state.
func (s State) Blobs() int { return len(s) / 3 }

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Mobility maps a force field to a velocity field at the given blob
// positions.
type Mobility interface {
	TransTimesForce(positions, forces []float64) ([]float64, error)
}

// ForceModel computes the deterministic force on every blob.
type ForceModel interface {
	Total(positions []float64) []float64
}

// Flow yields the instantaneous velocity field of a configuration.
type Flow interface {
	Velocity(x State, t float64) (State, error)
}

// Integrator advances a configuration by one timestep.
type Integrator interface {
	Step(flow Flow, x State, t, dt float64) (State, error)
}

// Metric accumulates an observable over a run.
type Metric interface {
	Name() string
	Observe(x, v State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(x, v State, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	// SaveEvery thins the stored trajectory; 0 or 1 keeps every step.
	SaveEvery int
}

type Result struct {
	Positions  []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
