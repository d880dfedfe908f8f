package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Picker is a menu of preset names. After the program exits, Chosen holds
// the selection, or "" when the user quit.
type Picker struct {
	items  []string
	info   map[string]string
	cursor int
	Chosen string
}

func NewPicker(items []string, info map[string]string) Picker {
	return Picker{items: items, info: info}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		p.Chosen = ""
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.items) > 0 {
			p.Chosen = p.items[p.cursor]
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("PLANET SIMULATION") + "\n\n")
	for i, name := range p.items {
		line := fmt.Sprintf("%-10s %s", name, dim.Render(p.info[name]))
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n" + dim.Render("↑↓ select  enter run  q quit") + "\n")
	return s.String()
}
