// Package integrators provides explicit steppers for the overdamped blob
// dynamics dx/dt = M(x) F(x). First-order dynamics carry no velocity state,
// so only deterministic forward schemes apply; thermal noise is handled by
// the caller, outside this package.
package integrators

import "github.com/dianalyx/RigidMultiblobsWall/internal/sim"

// Euler is the explicit first-order scheme x' = x + dt * u(x).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(flow sim.Flow, x sim.State, t, dt float64) (sim.State, error) {
	v, err := flow.Velocity(x, t)
	if err != nil {
		return nil, err
	}
	next := make(sim.State, len(x))
	for i := range x {
		next[i] = x[i] + dt*v[i]
	}
	return next, nil
}
