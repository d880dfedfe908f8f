// Package render holds the screen-space math shared by the window and
// terminal front ends.
package render

import (
	"fmt"
	"math"

	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
)

// DefaultScale maps one AU to 200 pixels.
const DefaultScale = 200 / physics.AU

// Viewport maps world meters to pixels with the origin at the center of a
// Width x Height surface.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64
}

func NewViewport(width, height int, scale float64) Viewport {
	return Viewport{Width: float64(width), Height: float64(height), Scale: scale}
}

func (v Viewport) ToScreen(p dynamo.Vec) (x, y float64) {
	return p.X*v.Scale + v.Width/2, p.Y*v.Scale + v.Height/2
}

// Trail converts a body's trail to screen points. It returns nil while the
// trail holds too few points to be worth a polyline.
func (v Viewport) Trail(b *dynamo.Body) [][2]float64 {
	if b.Trail == nil || b.Trail.Len() <= 2 {
		return nil
	}
	pts := b.Trail.Points()
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i][0], out[i][1] = v.ToScreen(p)
	}
	return out
}

// Zoom returns a copy with the scale multiplied by factor.
func (v Viewport) Zoom(factor float64) Viewport {
	v.Scale *= factor
	return v
}

// Fit returns the scale at which every body stays inside the surface with
// the given margin fraction.
func Fit(bodies []*dynamo.Body, width, height int, margin float64) float64 {
	extent := 0.0
	for _, b := range bodies {
		extent = math.Max(extent, math.Max(math.Abs(b.Pos.X), math.Abs(b.Pos.Y)))
	}
	if extent == 0 {
		return DefaultScale
	}
	half := math.Min(float64(width), float64(height)) / 2
	return half * (1 - margin) / extent
}

// DistanceLabel formats the distance to the primary in kilometers rounded
// to one decimal. The primary gets no label.
func DistanceLabel(b *dynamo.Body) string {
	if b.IsPrimary() {
		return ""
	}
	km := math.Round(b.DistanceToPrimary/1000*10) / 10
	return fmt.Sprintf("%.1fkm", km)
}
