package metrics

import (
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// MomentumDrift tracks the largest change of total momentum, relative to the
// sum of the bodies' momentum magnitudes at the first sample.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []*dynamo.Body, _ float64) {
	var p dynamo.Vec
	scale := 0.0
	for _, b := range bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
		scale += b.Mass * r2.Norm(b.Vel)
	}

	if m.samples == 0 {
		m.initial = p
		m.scale = scale
	}
	m.samples++

	if m.scale > 0 {
		drift := r2.Norm(p.Sub(m.initial)) / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
