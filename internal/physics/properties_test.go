package physics_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
)

func newSystem(bodies []*dynamo.Body) *physics.System {
	sys, err := physics.NewSystem(bodies, physics.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return sys
}

func step(sys *physics.System, n int) {
	for i := 0; i < n; i++ {
		sys.Step()
	}
}

var _ = Describe("System", func() {
	Describe("momentum", func() {
		It("is invariant across ticks", func() {
			sys := newSystem(physics.InnerPlanets())
			p0 := sys.Momentum()

			scale := 0.0
			for _, b := range sys.Bodies() {
				scale += b.Mass * r2.Norm(b.Vel)
			}

			step(sys, 1000)
			drift := r2.Norm(r2.Sub(sys.Momentum(), p0))
			Expect(drift / scale).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("trails", func() {
		It("hold exactly one point per tick in append order", func() {
			sys := newSystem(physics.InnerPlanets())
			earth, _ := sys.Body("earth")

			var seen []dynamo.Vec
			for i := 0; i < 50; i++ {
				sys.Step()
				seen = append(seen, earth.Pos)
			}

			for _, b := range sys.Bodies() {
				Expect(b.Trail.Len()).To(Equal(50))
			}
			Expect(earth.Trail.Points()).To(Equal(seen))
		})
	})

	Describe("replay", func() {
		It("is deterministic for identical initial conditions", func() {
			a := newSystem(physics.InnerPlanets())
			b := newSystem(physics.InnerPlanets())
			step(a, 500)
			step(b, 500)

			for i := range a.Bodies() {
				Expect(a.Bodies()[i].Pos).To(Equal(b.Bodies()[i].Pos))
				Expect(a.Bodies()[i].Vel).To(Equal(b.Bodies()[i].Vel))
				Expect(a.Bodies()[i].Trail.Points()).To(Equal(b.Bodies()[i].Trail.Points()))
			}
		})
	})

	Describe("circular orbit", func() {
		It("keeps the distance to the primary close to its start over one period", func() {
			probe := &dynamo.Body{
				Name: "probe",
				Pos:  dynamo.Vec{X: physics.AU},
				Vel:  dynamo.Vec{Y: physics.CircularVelocity(physics.SunMass, physics.AU)},
				Mass: 1,
			}
			sys := newSystem([]*dynamo.Body{physics.Sun(), probe})

			period := 2 * math.Pi * physics.AU / probe.Vel.Y
			ticks := int(math.Ceil(period / sys.Dt()))

			for i := 0; i < ticks; i++ {
				sys.Step()
				Expect(math.Abs(probe.DistanceToPrimary-physics.AU) / physics.AU).To(BeNumerically("<", 0.05))
			}
		})
	})

	Describe("earth around the sun", func() {
		It("returns close to its start after 365 daily ticks", func() {
			sys := newSystem(physics.EarthSun())
			earth, _ := sys.Body("earth")
			start := earth.Pos

			step(sys, 365)

			Expect(r2.Norm(r2.Sub(earth.Pos, start)) / physics.AU).To(BeNumerically("<", 0.05))
			Expect(earth.Trail.Len()).To(Equal(365))
		})
	})

	Describe("coincident bodies", func() {
		var bodies func() []*dynamo.Body

		BeforeEach(func() {
			bodies = func() []*dynamo.Body {
				rock := &dynamo.Body{Name: "rock", Mass: 1e20}
				return []*dynamo.Body{physics.Sun(), rock}
			}
		})

		It("exert no force under the distance floor", func() {
			sys := newSystem(bodies())
			step(sys, 3)
			for _, b := range sys.Bodies() {
				Expect(b.IsValid()).To(BeTrue())
				Expect(b.Vel).To(Equal(dynamo.Vec{}))
			}
		})

		It("surface an invalid state without the floor", func() {
			opts := physics.DefaultOptions()
			opts.MinDistance = 0
			sys, err := physics.NewSystem(bodies(), opts)
			Expect(err).NotTo(HaveOccurred())

			_, err = dynamo.New(sys).Run(context.Background(), dynamo.Config{Steps: 5})
			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(1))
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})
	})
})
