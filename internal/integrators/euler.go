package integrators

import "github.com/san-kum/planetsim/internal/dynamo"

// UpdateOrder selects when forces are evaluated relative to body updates.
type UpdateOrder int

const (
	// Simultaneous evaluates every force from the pre-step positions.
	Simultaneous UpdateOrder = iota
	// Sequential advances bodies one by one in collection order, so later
	// bodies feel the already-moved earlier ones.
	Sequential
)

// SemiImplicitEuler updates velocity first, then position with the new
// velocity.
type SemiImplicitEuler struct {
	Order  UpdateOrder
	forces []dynamo.Vec
}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{Order: Simultaneous}
}

func NewSequentialEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{Order: Sequential}
}

func (e *SemiImplicitEuler) Name() string {
	if e.Order == Sequential {
		return "semi-implicit-sequential"
	}
	return "semi-implicit"
}

func (e *SemiImplicitEuler) Step(f dynamo.ForceModel, bodies []*dynamo.Body, dt float64) {
	if e.Order == Sequential {
		for i, b := range bodies {
			kick(b, f.ForceOn(i, bodies), dt)
			drift(b, dt)
		}
		return
	}

	e.forces = forces(f, bodies, e.forces)
	for i, b := range bodies {
		kick(b, e.forces[i], dt)
		drift(b, dt)
	}
}

// Euler is the explicit scheme: position advances with the old velocity.
type Euler struct {
	forces []dynamo.Vec
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f dynamo.ForceModel, bodies []*dynamo.Body, dt float64) {
	e.forces = forces(f, bodies, e.forces)
	for i, b := range bodies {
		drift(b, dt)
		kick(b, e.forces[i], dt)
	}
}

func kick(b *dynamo.Body, force dynamo.Vec, dt float64) {
	b.Vel = b.Vel.Add(force.Scale(dt / b.Mass))
}

func drift(b *dynamo.Body, dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}

// forces evaluates every body's force into buf, growing it when needed.
func forces(f dynamo.ForceModel, bodies []*dynamo.Body, buf []dynamo.Vec) []dynamo.Vec {
	if len(buf) != len(bodies) {
		buf = make([]dynamo.Vec, len(bodies))
	}
	for i := range bodies {
		buf[i] = f.ForceOn(i, bodies)
	}
	return buf
}
