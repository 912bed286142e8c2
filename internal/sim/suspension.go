package sim

// Suspension is the overdamped flow of a blob suspension: the velocity of a
// configuration is the mobility applied to the current forces,
// u = M(x) F(x). Inertia plays no role at blob scale.
type Suspension struct {
	Mobility Mobility
	Forces   ForceModel
}

func NewSuspension(m Mobility, f ForceModel) *Suspension {
	return &Suspension{Mobility: m, Forces: f}
}

func (s *Suspension) Velocity(x State, t float64) (State, error) {
	f := s.Forces.Total(x)
	u, err := s.Mobility.TransTimesForce(x, f)
	if err != nil {
		return nil, err
	}
	return State(u), nil
}
