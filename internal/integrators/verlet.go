package integrators

import "github.com/san-kum/planetsim/internal/dynamo"

// Verlet is velocity Verlet: a full position update from the current
// acceleration, then a velocity update from the average of old and new.
type Verlet struct {
	prev []dynamo.Vec
	next []dynamo.Vec
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(f dynamo.ForceModel, bodies []*dynamo.Body, dt float64) {
	v.prev = forces(f, bodies, v.prev)

	halfDt2 := 0.5 * dt * dt
	for i, b := range bodies {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(v.prev[i].Scale(halfDt2 / b.Mass))
	}

	v.next = forces(f, bodies, v.next)

	halfDt := 0.5 * dt
	for i, b := range bodies {
		b.Vel = b.Vel.Add(v.prev[i].Add(v.next[i]).Scale(halfDt / b.Mass))
	}
}
