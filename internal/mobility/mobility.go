package mobility

import (
	"errors"
	"fmt"
	"runtime"
)

// Domain errors reported by [SingleWall.Validate].
var (
	// ErrDimensionMismatch indicates positions and forces disagree on N.
	ErrDimensionMismatch = errors.New("mobility: positions and forces length mismatch")

	// ErrParameterBounds indicates a non-positive viscosity or radius.
	ErrParameterBounds = errors.New("mobility: parameter out of valid bounds")
)

// SingleWall is the wall-bounded mobility operator for a monodisperse blob
// suspension. It wraps the raw kernel with fixed physical parameters and
// input validation, and satisfies the sim.Mobility interface.
type SingleWall struct {
	Eta    float64    // fluid dynamic viscosity, > 0
	Radius float64    // hydrodynamic blob radius, > 0
	Box    [3]float64 // periodic box lengths; accepted, currently unused
	// Workers bounds the goroutines used per evaluation.
	// Zero means GOMAXPROCS.
	Workers int
}

// NewSingleWall returns an operator for viscosity eta and blob radius a.
func NewSingleWall(eta, a float64) *SingleWall {
	return &SingleWall{Eta: eta, Radius: a}
}

// Validate rejects inputs that would make the O(N^2) evaluation meaningless:
// mismatched array lengths, lengths that are not a multiple of 3, or
// non-positive physical parameters. Blob heights are deliberately not
// checked; z <= 0 is a documented singular input, not a detected error.
func (m *SingleWall) Validate(positions, forces []float64) error {
	if len(positions) != len(forces) {
		return fmt.Errorf("%w: %d positions vs %d forces",
			ErrDimensionMismatch, len(positions), len(forces))
	}
	if len(positions)%3 != 0 {
		return fmt.Errorf("%w: length %d not a multiple of 3",
			ErrDimensionMismatch, len(positions))
	}
	if m.Eta <= 0 {
		return fmt.Errorf("%w: eta = %g", ErrParameterBounds, m.Eta)
	}
	if m.Radius <= 0 {
		return fmt.Errorf("%w: radius = %g", ErrParameterBounds, m.Radius)
	}
	return nil
}

// TransTimesForce validates the inputs and evaluates u = M*F.
func (m *SingleWall) TransTimesForce(positions, forces []float64) ([]float64, error) {
	if err := m.Validate(positions, forces); err != nil {
		return nil, err
	}
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(positions) / 3
	u := make([]float64, 3*n)
	reduceRows(u, n, workers, func(acc []float64, lo, hi int) {
		transTimesForceRows(acc, positions, forces, m.Eta, m.Radius, lo, hi)
	})
	return u, nil
}
