package integrators

import "github.com/san-kum/planetsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta scheme applied to the
// (position, velocity) pair of every body. Intermediate stages are
// evaluated on scratch copies so only the first stage refreshes the
// bodies' cached distances.
type RK4 struct {
	scratch        []*dynamo.Body
	k1, k2, k3, k4 []stage
	base           []stage
}

type stage struct {
	dx, dv dynamo.Vec
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(bodies []*dynamo.Body) {
	n := len(bodies)
	if len(r.scratch) != n {
		r.scratch = make([]*dynamo.Body, n)
		r.k1 = make([]stage, n)
		r.k2 = make([]stage, n)
		r.k3 = make([]stage, n)
		r.k4 = make([]stage, n)
		r.base = make([]stage, n)
	}
	for i, b := range bodies {
		if r.scratch[i] == nil {
			r.scratch[i] = &dynamo.Body{}
		}
		r.scratch[i].Name = b.Name
		r.scratch[i].Mass = b.Mass
		r.scratch[i].Role = b.Role
		r.base[i] = stage{dx: b.Pos, dv: b.Vel}
	}
}

func (r *RK4) derive(f dynamo.ForceModel, bodies []*dynamo.Body, k []stage) {
	for i, b := range bodies {
		force := f.ForceOn(i, bodies)
		k[i] = stage{
			dx: b.Vel,
			dv: force.Scale(1 / b.Mass),
		}
	}
}

// load places the scratch bodies at base + h*k.
func (r *RK4) load(k []stage, h float64) {
	for i, s := range r.scratch {
		s.Pos = r.base[i].dx.Add(k[i].dx.Scale(h))
		s.Vel = r.base[i].dv.Add(k[i].dv.Scale(h))
	}
}

func (r *RK4) Step(f dynamo.ForceModel, bodies []*dynamo.Body, dt float64) {
	r.ensureScratch(bodies)

	r.derive(f, bodies, r.k1)
	r.load(r.k1, dt*0.5)
	r.derive(f, r.scratch, r.k2)
	r.load(r.k2, dt*0.5)
	r.derive(f, r.scratch, r.k3)
	r.load(r.k3, dt)
	r.derive(f, r.scratch, r.k4)

	dt6 := dt / 6.0
	for i, b := range bodies {
		b.Pos = b.Pos.Add(weighted(r.k1[i].dx, r.k2[i].dx, r.k3[i].dx, r.k4[i].dx).Scale(dt6))
		b.Vel = b.Vel.Add(weighted(r.k1[i].dv, r.k2[i].dv, r.k3[i].dv, r.k4[i].dv).Scale(dt6))
	}
}

// weighted is the 1-2-2-1 stage sum.
func weighted(k1, k2, k3, k4 dynamo.Vec) dynamo.Vec {
	return k1.Add(k2.Add(k3).Scale(2)).Add(k4)
}
