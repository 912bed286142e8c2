package integrators

import "github.com/dianalyx/RigidMultiblobsWall/internal/sim"

// PredictorCorrector is the explicit trapezoidal scheme: an Euler predictor
// step followed by a correction with the velocity averaged between the
// current and predicted configurations. Each step costs two mobility
// evaluations but is second order in dt.
type PredictorCorrector struct {
	predicted sim.State
}

func NewPredictorCorrector() *PredictorCorrector {
	return &PredictorCorrector{}
}

func (p *PredictorCorrector) Step(flow sim.Flow, x sim.State, t, dt float64) (sim.State, error) {
	n := len(x)
	if len(p.predicted) != n {
		p.predicted = make(sim.State, n)
	}

	v1, err := flow.Velocity(x, t)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		p.predicted[i] = x[i] + dt*v1[i]
	}

	v2, err := flow.Velocity(p.predicted, t+dt)
	if err != nil {
		return nil, err
	}

	next := make(sim.State, n)
	half := dt * 0.5
	for i := 0; i < n; i++ {
		next[i] = x[i] + half*(v1[i]+v2[i])
	}
	return next, nil
}
