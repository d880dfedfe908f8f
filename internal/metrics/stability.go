package metrics

import (
	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Stability is the fraction of samples in which every body stays within
// radius meters of the origin.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(bodies []*dynamo.Body, _ float64) {
	s.samples++
	for _, b := range bodies {
		if r2.Norm(b.Pos) > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
