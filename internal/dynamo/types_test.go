package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestBody_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		body  Body
		valid bool
	}{
		{"zero", Body{}, true},
		{"normal", Body{Pos: Vec{X: 1, Y: 2}, Vel: Vec{X: 3, Y: 4}}, true},
		{"NaN position", Body{Pos: Vec{X: math.NaN()}}, false},
		{"+Inf velocity", Body{Vel: Vec{Y: math.Inf(1)}}, false},
		{"-Inf position", Body{Pos: Vec{Y: math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.body.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBody_Clone(t *testing.T) {
	b := &Body{Name: "earth", Pos: Vec{X: 1}, Trail: NewTrail(0)}
	b.Trail.Append(b.Pos)

	c := b.Clone()
	c.Pos.X = 5
	c.Trail.Append(c.Pos)

	if b.Pos.X != 1 {
		t.Error("Clone shares position")
	}
	if b.Trail.Len() != 1 {
		t.Error("Clone shares trail")
	}
}

func TestRole_String(t *testing.T) {
	if RolePrimary.String() != "primary" || RoleSatellite.String() != "satellite" {
		t.Errorf("unexpected role names: %s %s", RolePrimary, RoleSatellite)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 12, Time: 86400, Body: "mars", Wrapped: ErrInvalidState}
	expected := "step 12 (t=86400s) body mars: dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError should unwrap to ErrInvalidState")
	}
}
