package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
	"github.com/san-kum/planetsim/internal/render"
)

func (a *App) draw() {
	for _, b := range a.system.Bodies() {
		a.drawTrail(b)
	}
	for _, b := range a.system.Bodies() {
		a.drawBody(b)
	}
	a.drawHUD()
}

func (a *App) drawTrail(b *dynamo.Body) {
	pts := toVectors(a.viewport.Trail(b))
	if pts == nil {
		return
	}
	if a.opts.TrailWidth <= 1 {
		rl.DrawLineStrip(pts, b.Color)
		return
	}
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(pts[i-1], pts[i], a.opts.TrailWidth, b.Color)
	}
}

func (a *App) drawBody(b *dynamo.Body) {
	x, y := a.viewport.ToScreen(b.Pos)
	rl.DrawCircle(int32(x), int32(y), float32(b.Radius), b.Color)

	if !a.labels {
		return
	}
	text := render.DistanceLabel(b)
	if text == "" {
		return
	}
	size := int32(a.opts.FontSize)
	lx, ly := centered(x, y, rl.MeasureText(text, size), size)
	rl.DrawText(text, lx, ly, size, a.opts.LabelColor)
}

func (a *App) drawHUD() {
	size := int32(a.opts.FontSize)
	status := fmt.Sprintf("day %.0f  %s", a.system.Time()/physics.Day, a.system.Integrator().Name())
	if a.paused {
		status += "  [paused]"
	}
	rl.DrawText(status, 10, 10, size, a.opts.LabelColor)
	if a.lastErr != nil {
		rl.DrawText(a.lastErr.Error(), 10, 10+size+4, size, physics.Red)
	}
}

func toVectors(pts [][2]float64) []rl.Vector2 {
	if pts == nil {
		return nil
	}
	out := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		out[i] = rl.Vector2{X: float32(p[0]), Y: float32(p[1])}
	}
	return out
}

// centered returns the top-left corner that centers a text box of the
// given width and height on (x, y).
func centered(x, y float64, width, height int32) (int32, int32) {
	return int32(x) - width/2, int32(y) - height/2
}
