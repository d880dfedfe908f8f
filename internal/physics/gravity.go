package physics

import (
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67428e-11

	// AU is the astronomical unit in meters.
	AU = 149.6e6 * 1000

	// Day is one simulated day in seconds, the default timestep.
	Day = 3600 * 24

	// DefaultMinDistance floors pair separations, in meters.
	DefaultMinDistance = 1e3
)

// Gravity computes Newtonian attraction between point masses.
//
// Separations below MinDistance are clamped to MinDistance when computing
// the magnitude. Coincident bodies exert no force on each other since the
// direction is undefined. With MinDistance zero there is no guard and a
// coincident pair yields non-finite forces.
type Gravity struct {
	G           float64
	MinDistance float64
}

func NewGravity() *Gravity {
	return &Gravity{G: G, MinDistance: DefaultMinDistance}
}

// Attraction returns the force exerted on a by b and their separation.
func (g *Gravity) Attraction(a, b *dynamo.Body) (dynamo.Vec, float64) {
	d := b.Pos.Sub(a.Pos)
	r := r2.Norm(d)

	if r == 0 && g.MinDistance > 0 {
		return dynamo.Vec{}, 0
	}

	dist := max(r, g.MinDistance)

	f := g.G * a.Mass * b.Mass / (dist * dist)
	sin, cos := math.Sincos(math.Atan2(d.Y, d.X))
	return dynamo.Vec{X: f * cos, Y: f * sin}, r
}

// ForceOn sums the attraction of every other body on bodies[i] and
// refreshes its DistanceToPrimary.
func (g *Gravity) ForceOn(i int, bodies []*dynamo.Body) dynamo.Vec {
	self := bodies[i]
	var total dynamo.Vec

	for j, other := range bodies {
		if j == i {
			continue
		}

		f, r := g.Attraction(self, other)
		if other.IsPrimary() {
			self.DistanceToPrimary = r
		}
		total = total.Add(f)
	}

	return total
}

// Potential returns the pairwise potential energy of a and b, using the
// same distance floor as Attraction.
func (g *Gravity) Potential(a, b *dynamo.Body) float64 {
	d := max(r2.Norm(b.Pos.Sub(a.Pos)), g.MinDistance)
	return -g.G * a.Mass * b.Mass / d
}

// CircularVelocity is the speed of a circular orbit of radius r around a
// central mass.
func CircularVelocity(centralMass, r float64) float64 {
	return math.Sqrt(G * centralMass / r)
}
