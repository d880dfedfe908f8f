package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/integrators"
)

type Options struct {
	G           float64
	Dt          float64
	MinDistance float64
	// TrailLimit caps every trail that NewSystem creates. Zero is unbounded.
	TrailLimit int
	Integrator dynamo.Integrator
}

func DefaultOptions() Options {
	return Options{
		G:           G,
		Dt:          Day,
		MinDistance: DefaultMinDistance,
		Integrator:  integrators.NewSemiImplicitEuler(),
	}
}

// System is an ordered collection of bodies advanced with a fixed timestep.
// It takes ownership of the bodies passed to NewSystem.
type System struct {
	bodies  []*dynamo.Body
	initial []*dynamo.Body
	gravity *Gravity
	integ   dynamo.Integrator
	dt      float64
	t       float64
	steps   int
}

func NewSystem(bodies []*dynamo.Body, opts Options) (*System, error) {
	if err := validate(bodies, opts); err != nil {
		return nil, err
	}

	integ := opts.Integrator
	if integ == nil {
		integ = integrators.NewSemiImplicitEuler()
	}

	s := &System{
		bodies:  bodies,
		initial: make([]*dynamo.Body, len(bodies)),
		gravity: &Gravity{G: opts.G, MinDistance: opts.MinDistance},
		integ:   integ,
		dt:      opts.Dt,
	}

	for _, b := range bodies {
		if b.Trail == nil {
			b.Trail = dynamo.NewTrail(opts.TrailLimit)
		}
	}
	s.refreshDistances()
	for i, b := range bodies {
		s.initial[i] = b.Clone()
	}

	return s, nil
}

func validate(bodies []*dynamo.Body, opts Options) error {
	if len(bodies) == 0 {
		return dynamo.ErrNoBodies
	}

	primaries := 0
	for _, b := range bodies {
		if b.Mass <= 0 || math.IsInf(b.Mass, 0) || math.IsNaN(b.Mass) {
			return fmt.Errorf("%w: %s has mass %g", dynamo.ErrInvalidMass, b.Name, b.Mass)
		}
		if !b.IsValid() {
			return fmt.Errorf("%w: %s", dynamo.ErrInvalidState, b.Name)
		}
		if b.IsPrimary() {
			primaries++
		}
	}
	if primaries != 1 {
		return fmt.Errorf("%w: found %d", dynamo.ErrPrimaryCount, primaries)
	}

	if opts.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, opts.Dt)
	}
	if opts.G <= 0 {
		return fmt.Errorf("%w: G must be positive, got %g", dynamo.ErrInvalidConfig, opts.G)
	}
	if opts.MinDistance < 0 {
		return fmt.Errorf("%w: min distance must not be negative, got %g", dynamo.ErrInvalidConfig, opts.MinDistance)
	}
	return nil
}

// refreshDistances fills DistanceToPrimary without waiting for a step.
func (s *System) refreshDistances() {
	p := s.Primary()
	for _, b := range s.bodies {
		if b == p {
			continue
		}
		_, b.DistanceToPrimary = s.gravity.Attraction(b, p)
	}
}

// Step advances every body by one timestep and appends the new positions
// to their trails.
func (s *System) Step() {
	s.integ.Step(s.gravity, s.bodies, s.dt)
	for _, b := range s.bodies {
		b.Trail.Append(b.Pos)
	}
	s.t += s.dt
	s.steps++
}

// Reset restores the initial conditions and clears all trails.
func (s *System) Reset() {
	for i, b := range s.initial {
		c := b.Clone()
		c.Trail.Reset()
		s.bodies[i] = c
	}
	s.t = 0
	s.steps = 0
}

func (s *System) Bodies() []*dynamo.Body        { return s.bodies }
func (s *System) Time() float64                 { return s.t }
func (s *System) Dt() float64                   { return s.dt }
func (s *System) Steps() int                    { return s.steps }
func (s *System) Gravity() *Gravity             { return s.gravity }
func (s *System) Integrator() dynamo.Integrator { return s.integ }

// Primary returns the body holding the primary role.
func (s *System) Primary() *dynamo.Body {
	for _, b := range s.bodies {
		if b.IsPrimary() {
			return b
		}
	}
	return nil
}

// PrimaryIndex returns the position of the primary in Bodies.
func (s *System) PrimaryIndex() int {
	for i, b := range s.bodies {
		if b.IsPrimary() {
			return i
		}
	}
	return -1
}

func (s *System) Body(name string) (*dynamo.Body, bool) {
	for _, b := range s.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}
