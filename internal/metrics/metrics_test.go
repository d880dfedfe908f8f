package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
)

type fixedEnergy struct {
	values []float64
	i      int
}

func (f *fixedEnergy) Energy() float64 {
	v := f.values[f.i]
	f.i++
	return v
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(&fixedEnergy{values: []float64{-10, -11, -9.5, -10}})
	for i := 0; i < 4; i++ {
		m.Observe(nil, 0)
	}

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected max drift 0.1, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bodies := []*dynamo.Body{
		{Mass: 2, Vel: dynamo.Vec{X: 1}},
		{Mass: 1, Vel: dynamo.Vec{X: -2}},
	}
	m.Observe(bodies, 0)

	bodies[0].Vel.X = 2
	m.Observe(bodies, 1)

	// p went from 0 to 2, scale is 2+2.
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected drift 0.5, got %v", m.Value())
	}
}

func TestOrbitRadius(t *testing.T) {
	m := NewOrbitRadius("earth")
	earth := &dynamo.Body{Name: "earth", DistanceToPrimary: 100}
	others := []*dynamo.Body{{Name: "sun"}, earth}

	m.Observe(others, 0)
	earth.DistanceToPrimary = 103
	m.Observe(others, 1)
	earth.DistanceToPrimary = 99
	m.Observe(others, 2)

	if m.Name() != "orbit_radius_earth" {
		t.Errorf("unexpected name %q", m.Name())
	}
	if math.Abs(m.Value()-0.03) > 1e-12 {
		t.Errorf("expected 0.03, got %v", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	inside := []*dynamo.Body{{Pos: dynamo.Vec{X: 3, Y: 4}}}
	outside := []*dynamo.Body{{Pos: dynamo.Vec{X: 30}}}

	if m.Value() != 1 {
		t.Error("no samples should count as stable")
	}
	m.Observe(inside, 0)
	m.Observe(inside, 1)
	m.Observe(outside, 2)
	m.Observe(inside, 3)

	if m.Value() != 0.75 {
		t.Errorf("expected 0.75, got %v", m.Value())
	}
}

func TestMetricsOnInnerPlanets(t *testing.T) {
	sys, err := physics.NewSystem(physics.InnerPlanets(), physics.DefaultOptions())
	if err != nil {
		t.Fatalf("new system: %v", err)
	}
	s := dynamo.New(sys)
	s.AddMetric(NewMomentumDrift())
	s.AddMetric(NewEnergyDrift(sys))
	s.AddMetric(NewOrbitRadius("earth"))
	s.AddMetric(NewStability(5 * physics.AU))

	result, err := s.Run(context.Background(), dynamo.Config{Steps: 730})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["momentum_drift"] > 1e-9 {
		t.Errorf("momentum drift too large: %v", result.Metrics["momentum_drift"])
	}
	if result.Metrics["orbit_radius_earth"] > 0.05 {
		t.Errorf("earth orbit radius drifted: %v", result.Metrics["orbit_radius_earth"])
	}
	if result.Metrics["stability"] != 1 {
		t.Errorf("inner planets should stay bound, got %v", result.Metrics["stability"])
	}
	if result.Metrics["energy_drift"] <= 0 {
		t.Error("expected some energy drift from the fixed-step scheme")
	}
}
