package physics

import (
	"image/color"
	"sort"

	"github.com/san-kum/planetsim/internal/dynamo"
)

var (
	White    = color.RGBA{255, 255, 255, 255}
	Yellow   = color.RGBA{255, 255, 0, 255}
	Blue     = color.RGBA{100, 149, 237, 255}
	Red      = color.RGBA{188, 39, 50, 255}
	DarkGrey = color.RGBA{80, 78, 81, 255}
)

const (
	SunMass     = 1.98892e30
	MercuryMass = 3.30e23
	VenusMass   = 4.8685e24
	EarthMass   = 5.8742e24
	MarsMass    = 6.39e23
)

func Sun() *dynamo.Body {
	return &dynamo.Body{Name: "sun", Radius: 30, Color: Yellow, Mass: SunMass, Role: dynamo.RolePrimary}
}

// Earth starts 1 AU left of the origin. Planets on the negative x axis
// move in -y so every orbit runs the same way round.
func Earth() *dynamo.Body {
	return &dynamo.Body{
		Name:   "earth",
		Pos:    dynamo.Vec{X: -1 * AU},
		Vel:    dynamo.Vec{Y: -29.783 * 1000},
		Radius: 16,
		Color:  Blue,
		Mass:   EarthMass,
	}
}

func Mercury() *dynamo.Body {
	return &dynamo.Body{
		Name:   "mercury",
		Pos:    dynamo.Vec{X: 0.387 * AU},
		Vel:    dynamo.Vec{Y: 47.4 * 1000},
		Radius: 8,
		Color:  DarkGrey,
		Mass:   MercuryMass,
	}
}

func Venus() *dynamo.Body {
	return &dynamo.Body{
		Name:   "venus",
		Pos:    dynamo.Vec{X: 0.723 * AU},
		Vel:    dynamo.Vec{Y: 35.02 * 1000},
		Radius: 14,
		Color:  White,
		Mass:   VenusMass,
	}
}

func Mars() *dynamo.Body {
	return &dynamo.Body{
		Name:   "mars",
		Pos:    dynamo.Vec{X: -1.524 * AU},
		Vel:    dynamo.Vec{Y: -24.077 * 1000},
		Radius: 12,
		Color:  Red,
		Mass:   MarsMass,
	}
}

// InnerPlanets returns the sun followed by mercury, venus, earth and mars.
func InnerPlanets() []*dynamo.Body {
	return []*dynamo.Body{Sun(), Mercury(), Venus(), Earth(), Mars()}
}

func EarthSun() []*dynamo.Body {
	return []*dynamo.Body{Sun(), Earth()}
}

// Presets maps a scenario name to a constructor of fresh bodies.
var Presets = map[string]func() []*dynamo.Body{
	"inner": InnerPlanets,
	"earth": EarthSun,
}

func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
