package experiment

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/planetsim/internal/config"
	"github.com/san-kum/planetsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestRegistry_Integrators(t *testing.T) {
	r := NewRegistry()

	for _, name := range r.ListIntegrators() {
		integ, err := r.GetIntegrator(name)
		if err != nil {
			t.Fatalf("GetIntegrator(%q): %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("integrator registered as %q reports %q", name, integ.Name())
		}
	}

	if _, err := r.GetIntegrator("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestRegistry_DefaultMetrics(t *testing.T) {
	e, err := Build(config.DefaultConfig(), NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	ms := NewRegistry().DefaultMetrics(e.System())
	// energy, momentum, stability and one orbit radius per planet
	if len(ms) != 7 {
		t.Fatalf("expected 7 metrics, got %d", len(ms))
	}
	if ms[len(ms)-1].Name() != "orbit_radius_mars" {
		t.Errorf("unexpected last metric %q", ms[len(ms)-1].Name())
	}
}

func TestExperiment_Run(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Steps = 30
	cfg.RecordEvery = 10

	e, err := Build(cfg, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if result.StepsTaken != 30 {
		t.Errorf("expected 30 steps, got %d", result.StepsTaken)
	}
	// t=0 plus ticks 10, 20 and 30
	if len(result.Snapshots) != 4 {
		t.Errorf("expected 4 snapshots, got %d", len(result.Snapshots))
	}
	if result.Metrics["stability"] != 1 {
		t.Errorf("inner planets should stay bound, stability=%v", result.Metrics["stability"])
	}
	if result.Metrics["momentum_drift"] > 1e-9 {
		t.Errorf("momentum drift too large: %v", result.Metrics["momentum_drift"])
	}
	for _, b := range e.System().Bodies() {
		if b.Trail.Len() != 30 {
			t.Errorf("%s trail has %d points, want 30", b.Name, b.Trail.Len())
		}
	}
}

func TestExperiment_SetupErrors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*config.Config)
		want string
	}{
		{"unknown integrator", func(c *config.Config) { c.Integrator = "leapfrog" }, "unknown integrator"},
		{"unknown preset", func(c *config.Config) { c.Preset = "oort" }, "unknown preset"},
		{"no primary", func(c *config.Config) {
			c.Bodies = []config.BodyConfig{{Name: "a", Mass: 1}, {Name: "b", Mass: 1, X: 1}}
		}, "primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mod(cfg)
			_, err := Build(cfg, NewRegistry())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestExperiment_RunWithoutSetup(t *testing.T) {
	if _, err := New(config.DefaultConfig()).Run(context.Background()); err == nil {
		t.Error("expected error when running before setup")
	}
}

func TestExperiment_Cancelled(t *testing.T) {
	e, err := Build(config.DefaultConfig(), NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Run(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil || result.StepsTaken != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
	var _ dynamo.Model = e.System()
}

// The in-order preset reproduces the reference pygame demo tick for tick.
func TestOriginalPreset_EarthAfterOneYear(t *testing.T) {
	cfg := config.GetPreset("original")
	cfg.Steps = 365

	e, err := Build(cfg, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	final, ok := result.Final()
	if !ok {
		t.Fatal("no final snapshot")
	}
	earth := -1
	for i, name := range result.Names {
		if name == "earth" {
			earth = i
		}
	}
	if earth < 0 {
		t.Fatal("earth missing from result")
	}

	want := r2.Vec{X: -149597867633.04, Y: 263620480.01}
	got := final.Pos[earth]
	if rel := r2.Norm(r2.Sub(got, want)) / r2.Norm(want); rel > 1e-9 {
		t.Errorf("earth at %v, want %v (relative error %.3g)", got, want, rel)
	}
}
