package integrators

import (
	"testing"

	"github.com/san-kum/planetsim/internal/dynamo"
)

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	bodies := []*dynamo.Body{
		{Pos: dynamo.Vec{X: 1}, Mass: 1},
		{Pos: dynamo.Vec{Y: 1}, Mass: 2},
		{Pos: dynamo.Vec{X: -1}, Mass: 3},
		{Pos: dynamo.Vec{Y: -1}, Mass: 4},
		{Pos: dynamo.Vec{X: 2}, Mass: 5},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(spring{}, bodies, 0.01)
	}
}

func BenchmarkSemiImplicitEuler(b *testing.B) { benchmarkIntegrator(b, NewSemiImplicitEuler()) }
func BenchmarkEuler(b *testing.B)             { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkVerlet(b *testing.B)            { benchmarkIntegrator(b, NewVerlet()) }
func BenchmarkRK4(b *testing.B)               { benchmarkIntegrator(b, NewRK4()) }
