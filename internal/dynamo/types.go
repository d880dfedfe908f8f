package dynamo

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in world units (meters, meters/second or newtons).
type Vec = r2.Vec

// Role tags a body's part in the display. Physics treats every role alike.
type Role int

const (
	RoleSatellite Role = iota
	RolePrimary
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSatellite:
		return "satellite"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

type Body struct {
	Name   string
	Pos    Vec
	Vel    Vec
	Mass   float64
	Radius float64
	Color  color.RGBA
	Role   Role

	// DistanceToPrimary caches the last separation from the primary seen
	// during force evaluation. It stays zero for the primary itself.
	DistanceToPrimary float64

	Trail *Trail
}

func (b *Body) IsPrimary() bool { return b.Role == RolePrimary }

// IsValid reports whether position and velocity are finite.
func (b *Body) IsValid() bool {
	for _, v := range [4]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, trail included.
func (b *Body) Clone() *Body {
	c := *b
	if b.Trail != nil {
		c.Trail = b.Trail.Clone()
	}
	return &c
}

// ForceModel evaluates the total force acting on bodies[i].
// Implementations may update per-body caches such as DistanceToPrimary.
type ForceModel interface {
	ForceOn(i int, bodies []*Body) Vec
}

// Integrator advances every body's velocity and position by dt seconds.
// Trails are not touched; the owning model appends them after the step.
type Integrator interface {
	Name() string
	Step(f ForceModel, bodies []*Body, dt float64)
}

// Model is anything the Simulator can drive one tick at a time.
type Model interface {
	Bodies() []*Body
	Step()
	Time() float64
	Dt() float64
}

type Metric interface {
	Name() string
	Observe(bodies []*Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []*Body, t float64)
}

type Config struct {
	Steps int
	// RecordEvery keeps one snapshot per RecordEvery ticks. Zero means 1.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Steps:       365,
		RecordEvery: 1,
	}
}

// Snapshot is a copy of the kinematic state of every body at one instant.
type Snapshot struct {
	Time     float64
	Pos      []Vec
	Vel      []Vec
	Distance []float64
}

func TakeSnapshot(bodies []*Body, t float64) Snapshot {
	s := Snapshot{
		Time:     t,
		Pos:      make([]Vec, len(bodies)),
		Vel:      make([]Vec, len(bodies)),
		Distance: make([]float64, len(bodies)),
	}
	for i, b := range bodies {
		s.Pos[i] = b.Pos
		s.Vel[i] = b.Vel
		s.Distance[i] = b.DistanceToPrimary
	}
	return s
}

type Result struct {
	Names      []string
	Snapshots  []Snapshot
	Metrics    map[string]float64
	StepsTaken int
}

// Times returns the timestamps of all recorded snapshots.
func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		times[i] = s.Time
	}
	return times
}

// Final returns the last recorded snapshot.
func (r *Result) Final() (Snapshot, bool) {
	if len(r.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return r.Snapshots[len(r.Snapshots)-1], true
}
