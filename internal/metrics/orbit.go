package metrics

import (
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
)

// OrbitRadius reports the largest relative deviation of one body's distance
// to the primary from its first observed value.
type OrbitRadius struct {
	body     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewOrbitRadius(body string) *OrbitRadius {
	return &OrbitRadius{body: body}
}

func (o *OrbitRadius) Name() string { return "orbit_radius_" + o.body }

func (o *OrbitRadius) Observe(bodies []*dynamo.Body, _ float64) {
	for _, b := range bodies {
		if b.Name != o.body {
			continue
		}
		if o.samples == 0 {
			o.initial = b.DistanceToPrimary
		}
		o.samples++
		if o.initial > 0 {
			o.maxDrift = math.Max(o.maxDrift, math.Abs(b.DistanceToPrimary-o.initial)/o.initial)
		}
		return
	}
}

func (o *OrbitRadius) Value() float64 { return o.maxDrift }

func (o *OrbitRadius) Reset() {
	o.initial = 0
	o.maxDrift = 0
	o.samples = 0
}
