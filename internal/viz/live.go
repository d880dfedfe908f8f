package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planetsim/internal/dynamo"
	"github.com/san-kum/planetsim/internal/physics"
	"github.com/san-kum/planetsim/internal/render"
)

const (
	width            = 60
	height           = 24
	historyCapacity  = 365
	maxTicksPerFrame = 30
)

type TickMsg time.Time

// Model contains the running system, the braille canvas and the chart
// history.
type Model struct {
	sim           *dynamo.Simulator
	system        *physics.System
	title         string
	canvas        *Canvas
	viewport      render.Viewport
	running       bool
	showHelp      bool
	focus         int
	ticksPerFrame int
	history       []float64
	err           error
}

// NewModel fits the viewport to the initial bodies so the widest orbit
// fills the canvas.
func NewModel(sim *dynamo.Simulator, system *physics.System, title string) Model {
	canvas := NewCanvas(width, height)
	pw, ph := canvas.PixelSize()
	scale := render.Fit(system.Bodies(), pw, ph, 0.1)

	m := Model{
		sim:           sim,
		system:        system,
		title:         title,
		canvas:        canvas,
		viewport:      render.NewViewport(pw, ph, scale),
		running:       true,
		ticksPerFrame: 1,
		history:       make([]float64, 0, historyCapacity),
	}
	m.focus = m.firstSatellite()
	return m
}

func (m Model) firstSatellite() int {
	for i, b := range m.system.Bodies() {
		if !b.IsPrimary() {
			return i
		}
	}
	return 0
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleFocus()
		case "+", "=":
			m.ticksPerFrame = min(m.ticksPerFrame*2, maxTicksPerFrame)
		case "-", "_":
			m.ticksPerFrame = max(m.ticksPerFrame/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances ticksPerFrame ticks. A failed tick pauses the view and
// keeps the error on screen.
func (m *Model) step() {
	for i := 0; i < m.ticksPerFrame; i++ {
		if err := m.sim.Tick(); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.record()
	}
}

func (m *Model) record() {
	b := m.system.Bodies()[m.focus]
	m.history = append(m.history, b.DistanceToPrimary/physics.AU)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) reset() {
	m.system.Reset()
	m.history = m.history[:0]
	m.err = nil
	m.running = true
}

func (m *Model) cycleFocus() {
	bodies := m.system.Bodies()
	for range bodies {
		m.focus = (m.focus + 1) % len(bodies)
		if !bodies[m.focus].IsPrimary() {
			break
		}
	}
	m.history = m.history[:0]
}

func (m *Model) draw() {
	m.canvas.Clear()
	bodies := m.system.Bodies()
	for _, b := range bodies {
		pts := m.viewport.Trail(b)
		for i := 1; i < len(pts); i++ {
			m.canvas.DrawLine(int(pts[i-1][0]), int(pts[i-1][1]), int(pts[i][0]), int(pts[i][1]))
		}
	}
	for _, b := range bodies {
		x, y := m.viewport.ToScreen(b.Pos)
		glyph := "●"
		if b.IsPrimary() {
			glyph = "☀"
		}
		m.canvas.Mark(int(x), int(y), bodyStyle(b.Color).Render(glyph))
	}
}

// View renders the canvas next to the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, m.ticksPerFrame))

	days := m.system.Time() / physics.Day
	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.0f", days)) + "\n")
	year := math.Mod(days, 365.25) / 365.25
	s.WriteString(labelStyle.Render("Year") + valueStyle.Render(ProgressBar(year, 20)) + "\n")
	s.WriteString(labelStyle.Render("Method") + valueStyle.Render(m.system.Integrator().Name()) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6e J", m.system.Energy())) + "\n\n")

	for i, b := range m.system.Bodies() {
		name := bodyStyle(b.Color).Render(fmt.Sprintf("%-8s", b.Name))
		label := render.DistanceLabel(b)
		if b.IsPrimary() {
			label = "primary"
		}
		line := name + " " + valueStyle.Render(label)
		if i == m.focus {
			line = focusStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		s.WriteString(line + "\n")
	}

	if len(m.history) > 1 {
		caption := fmt.Sprintf("%s distance (AU)", m.system.Bodies()[m.focus].Name)
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nTAB:Focus +/-:Speed ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to day zero        ║
║  Tab      - Cycle charted body       ║
║  + / -    - Double / halve speed     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
