// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the loop player UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume adjustment from the TUI
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals the TUI has requested shutdown
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(volCtrl *VolumeControl) Model {
	return Model{
		volume:     100,
		volumeCtrl: volCtrl,
	}
}

// Run starts the TUI
func Run(volCtrl *VolumeControl) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(volCtrl), tea.WithAltScreen())
	return p, nil
}
