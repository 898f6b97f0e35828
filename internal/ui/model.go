// ABOUTME: Bubbletea model for the loop player TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Loopline-Audio/loopline-go/pkg/loop"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model represents the TUI state
type Model struct {
	// Session
	running bool
	session loop.Session
	now     float64

	// Playback
	volume int
	muted  bool

	// Dimensions
	width  int
	height int

	volumeCtrl *VolumeControl
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Loopline Player"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderSession()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderControls()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: volume   m: mute   q: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderSession renders the loop session panel
func (m Model) renderSession() string {
	if !m.running {
		return "Not looping"
	}

	s := m.session
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Clip:     "), s.Clip)
	fmt.Fprintf(&b, "%s %.2fs  crossfade %.2fs  stride %.2fs\n",
		labelStyle.Render("Duration: "), s.Duration, s.Crossfade, s.Stride)
	fmt.Fprintf(&b, "%s %.2fs (lookahead %.2fs)\n",
		labelStyle.Render("Clock:    "), m.now, s.Lookahead)
	fmt.Fprintf(&b, "%s start %s next %s gain %s\n",
		labelStyle.Render("Handle A: "),
		renderTime(s.StartA), renderTime(s.NextA), renderGain(s.GainA))
	fmt.Fprintf(&b, "%s start %s next %s gain %s",
		labelStyle.Render("Handle B: "),
		renderTime(s.StartB), renderTime(s.NextB), renderGain(s.GainB))

	return b.String()
}

// renderControls renders volume state
func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = "  [muted]"
	}

	return fmt.Sprintf("Volume: [%s] %d%%%s", renderBar(m.volume, 100, 20), m.volume, muteIcon)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.sendVolume()
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}

	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
		// Never block the update loop on a slow consumer
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Running != nil {
		m.running = *msg.Running
	}
	if msg.Session != nil {
		m.session = *msg.Session
	}
	if msg.Now > 0 {
		m.now = msg.Now
	}
	if msg.Volume != nil {
		m.volume = *msg.Volume
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Running *bool
	Session *loop.Session
	Now     float64
	Volume  *int
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func renderTime(t float64) string {
	if t < 0 {
		return "--"
	}
	return fmt.Sprintf("%.2fs", t)
}

func renderGain(g float64) string {
	return fmt.Sprintf("%.2f", g)
}
