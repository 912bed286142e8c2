package sim

import (
	"context"
	"fmt"
)

// Simulator drives a Flow forward in time, collecting the trajectory,
// metrics, and observer callbacks. Instances are not safe for concurrent
// use.
type Simulator struct {
	flow       Flow
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(flow Flow, integrator Integrator) *Simulator {
	return &Simulator{
		flow:       flow,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	saveEvery := cfg.SaveEvery
	if saveEvery < 1 {
		saveEvery = 1
	}

	result := &Result{
		Positions: make([]State, 0, steps/saveEvery+1),
		Times:     make([]float64, 0, steps/saveEvery+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.Positions = append(result.Positions, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		v, err := s.flow.Velocity(x, t)
		if err != nil {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		for _, m := range s.metrics {
			m.Observe(x, v, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, v, t)
		}

		newX, err := s.integrator.Step(s.flow, x, t, cfg.Dt)
		if err != nil {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++

		if result.StepsTaken%saveEvery == 0 {
			result.Positions = append(result.Positions, x.Clone())
			result.Times = append(result.Times, t)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}
