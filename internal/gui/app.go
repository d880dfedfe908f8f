// Package gui draws a running simulation in a raylib window.
package gui

import (
	"context"
	"image/color"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
	"github.com/san-kum/planetsim/internal/render"
)

type Options struct {
	Width      int
	Height     int
	Title      string
	FPS        int
	FontSize   int
	Scale      float64
	Background color.RGBA
	LabelColor color.RGBA
	TrailWidth float32
	Logger     *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Title:      "Planet Simulation",
		FPS:        60,
		FontSize:   16,
		Scale:      render.DefaultScale,
		Background: color.RGBA{0, 0, 0, 255},
		LabelColor: physics.White,
		TrailWidth: 2,
		Logger:     log.Default(),
	}
}

type App struct {
	opts     Options
	sim      *dynamo.Simulator
	system   *physics.System
	viewport render.Viewport
	paused   bool
	labels   bool
	lastErr  error
}

func NewApp(sim *dynamo.Simulator, system *physics.System, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &App{
		opts:     opts,
		sim:      sim,
		system:   system,
		viewport: render.NewViewport(opts.Width, opts.Height, opts.Scale),
		labels:   true,
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	rl.InitWindow(int32(a.opts.Width), int32(a.opts.Height), a.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.opts.FPS))

	a.opts.Logger.Info("window opened", "width", a.opts.Width, "height", a.opts.Height, "bodies", len(a.system.Bodies()))

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(a.opts.Background)
		a.update()
		a.draw()
		rl.EndDrawing()
	}

	a.opts.Logger.Info("window closed", "steps", a.system.Steps(), "days", a.system.Time()/physics.Day)
	return a.lastErr
}

func (a *App) handleInput() {
	for _, k := range []int32{rl.KeySpace, rl.KeyR, rl.KeyL, rl.KeyEqual, rl.KeyMinus} {
		if rl.IsKeyPressed(k) {
			a.handleKey(k)
		}
	}
}

func (a *App) handleKey(k int32) {
	switch k {
	case rl.KeySpace:
		a.paused = !a.paused
	case rl.KeyR:
		a.system.Reset()
		a.lastErr = nil
		a.paused = false
		a.opts.Logger.Debug("reset")
	case rl.KeyL:
		a.labels = !a.labels
	case rl.KeyEqual:
		a.viewport = a.viewport.Zoom(1.25)
	case rl.KeyMinus:
		a.viewport = a.viewport.Zoom(0.8)
	}
}

// update advances one tick per frame. A failed tick pauses the window so the
// last valid frame stays visible.
func (a *App) update() {
	if a.paused {
		return
	}
	if err := a.sim.Tick(); err != nil {
		a.lastErr = err
		a.paused = true
		a.opts.Logger.Error("simulation halted", "err", err)
	}
}
