// ABOUTME: Scene transition fade service
// ABOUTME: Drives a fade overlay through an asynchronous scene load
package transition

import (
	"fmt"
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// State is the transition phase
type State int

const (
	StateIdle State = iota
	StateFadingOut
	StateLoading
	StateFadingIn
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFadingOut:
		return "fading-out"
	case StateLoading:
		return "loading"
	case StateFadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// Overlay is the fade surface, fully transparent at 0 and opaque at 1
type Overlay interface {
	SetAlpha(alpha float64)
}

// Loader performs asynchronous scene loads behind the fade
type Loader interface {
	// StartLoad begins loading the named scene in the background
	StartLoad(scene string)

	// Progress reports load progress in [0, 1]
	Progress() float64

	// Ready reports whether the load can be activated
	Ready() bool

	// Activate switches to the loaded scene
	Activate() error
}

// Config holds transition parameters
type Config struct {
	// FadeOut is the fade-to-black duration in seconds (default: 0.5)
	FadeOut float64

	// FadeIn is the fade-from-black duration in seconds (default: 0.5)
	FadeIn float64

	// OnSceneActive is called once the new scene has been activated,
	// before the fade-in begins
	OnSceneActive func(scene string)
}

// Manager owns the fade overlay and sequences fade-out, load, and
// fade-in. It is constructed and owned explicitly by the caller; there
// is no global instance.
type Manager struct {
	overlay Overlay
	loader  Loader
	cfg     Config

	state State
	scene string
	tween *gween.Tween
}

// New creates a transition manager
func New(overlay Overlay, loader Loader, cfg Config) *Manager {
	if cfg.FadeOut <= 0 {
		cfg.FadeOut = 0.5
	}
	if cfg.FadeIn <= 0 {
		cfg.FadeIn = 0.5
	}

	return &Manager{
		overlay: overlay,
		loader:  loader,
		cfg:     cfg,
	}
}

// Begin starts a transition to the named scene. A transition already
// in progress is not interrupted.
func (m *Manager) Begin(scene string) error {
	if m.state != StateIdle {
		log.Printf("Transition to %s refused: %s transition in progress", scene, m.state)
		return fmt.Errorf("transition already in progress")
	}

	m.scene = scene
	m.state = StateFadingOut
	m.tween = gween.New(0, 1, float32(m.cfg.FadeOut), ease.InOutQuad)

	log.Printf("Transition to %s: fading out over %.2fs", scene, m.cfg.FadeOut)
	return nil
}

// Tick advances the transition by dt seconds. Call once per host frame.
func (m *Manager) Tick(dt float64) {
	switch m.state {
	case StateFadingOut:
		alpha, done := m.tween.Update(float32(dt))
		m.overlay.SetAlpha(float64(alpha))

		if done {
			m.loader.StartLoad(m.scene)
			m.state = StateLoading
		}

	case StateLoading:
		// Hold full black while the loader works
		m.overlay.SetAlpha(1)

		if m.loader.Ready() {
			if err := m.loader.Activate(); err != nil {
				log.Printf("Scene %s activation failed: %v", m.scene, err)
				// Fade back in on the old scene rather than staying black
			} else if m.cfg.OnSceneActive != nil {
				m.cfg.OnSceneActive(m.scene)
			}

			m.state = StateFadingIn
			m.tween = gween.New(1, 0, float32(m.cfg.FadeIn), ease.InOutQuad)
		}

	case StateFadingIn:
		alpha, done := m.tween.Update(float32(dt))
		m.overlay.SetAlpha(float64(alpha))

		if done {
			m.overlay.SetAlpha(0)
			m.state = StateIdle
			m.scene = ""
			m.tween = nil
		}
	}
}

// State returns the current transition phase
func (m *Manager) State() State {
	return m.state
}

// Active reports whether a transition is in progress
func (m *Manager) Active() bool {
	return m.state != StateIdle
}

// Scene returns the transition target while one is in progress
func (m *Manager) Scene() string {
	return m.scene
}

// Progress reports the loader's progress while loading, else 0
func (m *Manager) Progress() float64 {
	if m.state != StateLoading {
		return 0
	}
	return m.loader.Progress()
}
