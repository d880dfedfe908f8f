package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/integrators"
)

func TestNewSystem_Validation(t *testing.T) {
	tests := []struct {
		name   string
		bodies func() []*dynamo.Body
		opts   func(*Options)
		want   error
	}{
		{"empty", func() []*dynamo.Body { return nil }, nil, dynamo.ErrNoBodies},
		{"no primary", func() []*dynamo.Body { return []*dynamo.Body{Earth(), Mars()} }, nil, dynamo.ErrPrimaryCount},
		{"two primaries", func() []*dynamo.Body { return []*dynamo.Body{Sun(), Sun()} }, nil, dynamo.ErrPrimaryCount},
		{"zero mass", func() []*dynamo.Body {
			e := Earth()
			e.Mass = 0
			return []*dynamo.Body{Sun(), e}
		}, nil, dynamo.ErrInvalidMass},
		{"zero dt", EarthSun, func(o *Options) { o.Dt = 0 }, dynamo.ErrInvalidConfig},
		{"negative floor", EarthSun, func(o *Options) { o.MinDistance = -1 }, dynamo.ErrInvalidConfig},
		{"zero G", EarthSun, func(o *Options) { o.G = 0 }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := NewSystem(tt.bodies(), opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewSystem_Defaults(t *testing.T) {
	sys, err := NewSystem(InnerPlanets(), Options{G: G, Dt: Day})
	if err != nil {
		t.Fatalf("new system: %v", err)
	}

	if sys.Integrator().Name() != "semi-implicit" {
		t.Errorf("expected semi-implicit default, got %s", sys.Integrator().Name())
	}
	if sys.Primary().Name != "sun" || sys.PrimaryIndex() != 0 {
		t.Errorf("unexpected primary %s at %d", sys.Primary().Name, sys.PrimaryIndex())
	}
	mars, ok := sys.Body("mars")
	if !ok {
		t.Fatal("mars missing")
	}
	if mars.DistanceToPrimary != 1.524*AU {
		t.Errorf("distance should be primed at construction, got %g", mars.DistanceToPrimary)
	}
	for _, b := range sys.Bodies() {
		if b.Trail == nil || b.Trail.Len() != 0 {
			t.Errorf("%s should start with an empty trail", b.Name)
		}
	}
}

func TestSystem_TrailLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.TrailLimit = 10
	sys, err := NewSystem(InnerPlanets(), opts)
	if err != nil {
		t.Fatalf("new system: %v", err)
	}

	for i := 0; i < 25; i++ {
		sys.Step()
	}
	for _, b := range sys.Bodies() {
		if b.Trail.Len() != 10 {
			t.Errorf("%s trail length = %d, want 10", b.Name, b.Trail.Len())
		}
		last, _ := b.Trail.Last()
		if last != b.Pos {
			t.Errorf("%s trail does not end at the current position", b.Name)
		}
	}
}

func TestSystem_Reset(t *testing.T) {
	sys, err := NewSystem(InnerPlanets(), DefaultOptions())
	if err != nil {
		t.Fatalf("new system: %v", err)
	}
	start := Earth().Pos

	for i := 0; i < 40; i++ {
		sys.Step()
	}
	sys.Reset()

	earth, _ := sys.Body("earth")
	if earth.Pos != start {
		t.Errorf("expected earth back at %v, got %v", start, earth.Pos)
	}
	if earth.Trail.Len() != 0 {
		t.Errorf("expected empty trail after reset, got %d", earth.Trail.Len())
	}
	if sys.Time() != 0 || sys.Steps() != 0 {
		t.Errorf("expected clock reset, got t=%g steps=%d", sys.Time(), sys.Steps())
	}

	sys.Step()
	if earth2, _ := sys.Body("earth"); earth2.Trail.Len() != 1 {
		t.Error("reset system should keep stepping")
	}
}

func TestSystem_SequentialMatchesFirstBody(t *testing.T) {
	opts := DefaultOptions()
	simul, _ := NewSystem(InnerPlanets(), opts)
	opts.Integrator = integrators.NewSequentialEuler()
	seq, _ := NewSystem(InnerPlanets(), opts)

	simul.Step()
	seq.Step()

	// The first body sees the same positions under both orders.
	if simul.Bodies()[0].Pos != seq.Bodies()[0].Pos {
		t.Error("first body should move identically")
	}
	if simul.Bodies()[4].Pos == seq.Bodies()[4].Pos {
		t.Error("last body should feel the moved bodies under sequential order")
	}
}

func TestSystem_ConservedQuantities(t *testing.T) {
	sys, err := NewSystem(EarthSun(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	earth, _ := sys.Body("earth")

	p := sys.Momentum()
	if p.X != 0 || math.Abs(p.Y-EarthMass*earth.Vel.Y) > 1e-6*math.Abs(p.Y) {
		t.Errorf("momentum = %v, want (0, %g)", p, EarthMass*earth.Vel.Y)
	}

	// L = m (x vy - y vx) with x = -AU, vy < 0
	wantL := EarthMass * -AU * earth.Vel.Y
	if l := sys.AngularMomentum(); math.Abs(l-wantL) > 1e-9*math.Abs(wantL) {
		t.Errorf("angular momentum = %g, want %g", l, wantL)
	}

	wantX := -AU * EarthMass / (EarthMass + SunMass)
	if c := sys.CenterOfMass(); math.Abs(c.X-wantX) > 1e-9*math.Abs(wantX) || c.Y != 0 {
		t.Errorf("center of mass = %v, want (%g, 0)", c, wantX)
	}

	ke := 0.5 * EarthMass * earth.Vel.Y * earth.Vel.Y
	pe := -G * SunMass * EarthMass / AU
	if e := sys.Energy(); math.Abs(e-(ke+pe)) > 1e-9*math.Abs(ke+pe) {
		t.Errorf("energy = %g, want %g", e, ke+pe)
	}
}
