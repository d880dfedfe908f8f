package physics

import (
	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func (s *System) TotalMass() float64 {
	m := 0.0
	for _, b := range s.bodies {
		m += b.Mass
	}
	return m
}

// Momentum returns the mass-weighted velocity sum.
func (s *System) Momentum() dynamo.Vec {
	var p dynamo.Vec
	for _, b := range s.bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// Energy returns kinetic plus pairwise potential energy.
func (s *System) Energy() float64 {
	ke, pe := 0.0, 0.0
	for i, a := range s.bodies {
		ke += 0.5 * a.Mass * r2.Dot(a.Vel, a.Vel)
		for _, b := range s.bodies[i+1:] {
			pe += s.gravity.Potential(a, b)
		}
	}
	return ke + pe
}

// AngularMomentum returns the z component about the origin.
func (s *System) AngularMomentum() float64 {
	l := 0.0
	for _, b := range s.bodies {
		l += b.Mass * r2.Cross(b.Pos, b.Vel)
	}
	return l
}

func (s *System) CenterOfMass() dynamo.Vec {
	var c dynamo.Vec
	m := s.TotalMass()
	for _, b := range s.bodies {
		c = c.Add(b.Pos.Scale(b.Mass / m))
	}
	return c
}
