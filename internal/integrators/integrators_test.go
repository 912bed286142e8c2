package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/dianalyx/RigidMultiblobsWall/internal/sim"
)

// decayFlow has the exact solution x(t) = x0 * exp(-t).
type decayFlow struct{}

func (decayFlow) Velocity(x sim.State, t float64) (sim.State, error) {
	v := make(sim.State, len(x))
	for i := range x {
		v[i] = -x[i]
	}
	return v, nil
}

func integrate(t *testing.T, integ sim.Integrator, dt float64, steps int) float64 {
	t.Helper()
	x := sim.State{1.0}
	var err error
	for i := 0; i < steps; i++ {
		x, err = integ.Step(decayFlow{}, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return x[0]
}

func TestEulerAccuracy(t *testing.T) {
	got := integrate(t, NewEuler(), 0.01, 100)
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 2e-3 {
		t.Errorf("euler: got %.6f, want %.6f", got, want)
	}
}

func TestPredictorCorrectorAccuracy(t *testing.T) {
	got := integrate(t, NewPredictorCorrector(), 0.01, 100)
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("predictor-corrector: got %.6f, want %.6f", got, want)
	}
}

func TestPredictorCorrectorBeatsEuler(t *testing.T) {
	want := math.Exp(-1.0)
	eulerErr := math.Abs(integrate(t, NewEuler(), 0.05, 20) - want)
	pcErr := math.Abs(integrate(t, NewPredictorCorrector(), 0.05, 20) - want)
	if pcErr >= eulerErr {
		t.Errorf("expected smaller error from predictor-corrector: %g vs %g", pcErr, eulerErr)
	}
}

type failingFlow struct{}

var errFlow = errors.New("flow failed")

func (failingFlow) Velocity(x sim.State, t float64) (sim.State, error) {
	return nil, errFlow
}

func TestStepPropagatesFlowError(t *testing.T) {
	for _, integ := range []sim.Integrator{NewEuler(), NewPredictorCorrector()} {
		if _, err := integ.Step(failingFlow{}, sim.State{1}, 0, 0.1); !errors.Is(err, errFlow) {
			t.Errorf("%T: expected flow error, got %v", integ, err)
		}
	}
}
