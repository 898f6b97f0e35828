// ABOUTME: Roulette minigame state machine
// ABOUTME: Six-chamber cylinder with timed spin and injected cue callbacks
package roulette

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Chambers is the cylinder size
const Chambers = 6

// Phase is the game phase
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseReady
	PhaseClicked
	PhaseFired
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseReady:
		return "ready"
	case PhaseClicked:
		return "clicked"
	case PhaseFired:
		return "fired"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Cues receives game events so audio and visual reactions can be
// attached without the game knowing about them
type Cues interface {
	// SpinStarted fires when the cylinder starts spinning
	SpinStarted()

	// DryFire fires on an empty chamber
	DryFire()

	// LiveFire fires on the loaded chamber
	LiveFire()

	// RoundOver fires when the round ends
	RoundOver(survivedPulls int)
}

// NopCues ignores every cue
type NopCues struct{}

func (NopCues) SpinStarted()  {}
func (NopCues) DryFire()      {}
func (NopCues) LiveFire()     {}
func (NopCues) RoundOver(int) {}

// Config holds game timing parameters
type Config struct {
	// SpinDuration is how long the cylinder spins in seconds (default: 1.5)
	SpinDuration float64

	// ClickDuration is the dry-fire recovery time in seconds (default: 0.6)
	ClickDuration float64

	// FireDuration is the live-fire hold before the round ends (default: 2.0)
	FireDuration float64
}

// Game is the minigame. One round is loaded into a random chamber;
// Spin randomizes the alignment and each trigger pull either clicks
// on an empty chamber or fires on the loaded one.
//
// Safe for concurrent use: Tick may run on a ticker goroutine while
// commands arrive from input handling. Cues are delivered outside the
// lock, so a cue handler may call back into the game.
type Game struct {
	cues Cues
	cfg  Config

	mu      sync.Mutex
	rng     *rand.Rand
	phase   Phase
	roundID string
	loaded  int
	chamber int
	pulls   int
	timer   float64
}

// New creates a game in the idle phase. A nil cues sink is replaced
// with NopCues.
func New(cues Cues, cfg Config) *Game {
	if cues == nil {
		cues = NopCues{}
	}
	if cfg.SpinDuration <= 0 {
		cfg.SpinDuration = 1.5
	}
	if cfg.ClickDuration <= 0 {
		cfg.ClickDuration = 0.6
	}
	if cfg.FireDuration <= 0 {
		cfg.FireDuration = 2.0
	}

	return &Game{
		cues: cues,
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Spin starts a round: loads one chamber, randomizes the cylinder
// alignment, and begins the timed spin. Only valid from idle.
func (g *Game) Spin() error {
	g.mu.Lock()
	if g.phase != PhaseIdle {
		phase := g.phase
		g.mu.Unlock()
		return fmt.Errorf("cannot spin in phase %s", phase)
	}

	g.roundID = uuid.New().String()
	g.loaded = g.rng.IntN(Chambers)
	g.chamber = g.rng.IntN(Chambers)
	g.pulls = 0
	g.phase = PhaseSpinning
	g.timer = g.cfg.SpinDuration
	roundID := g.roundID
	g.mu.Unlock()

	log.Printf("Roulette round %s: cylinder spinning", roundID)
	g.cues.SpinStarted()
	return nil
}

// PullTrigger fires the current chamber. Only valid when ready.
func (g *Game) PullTrigger() error {
	g.mu.Lock()
	if g.phase != PhaseReady {
		phase := g.phase
		g.mu.Unlock()
		return fmt.Errorf("cannot pull trigger in phase %s", phase)
	}

	g.pulls++
	live := g.chamber == g.loaded
	if live {
		g.phase = PhaseFired
		g.timer = g.cfg.FireDuration
	} else {
		g.phase = PhaseClicked
		g.timer = g.cfg.ClickDuration
	}
	roundID, pulls := g.roundID, g.pulls
	g.mu.Unlock()

	if live {
		log.Printf("Roulette round %s: live fire on pull %d", roundID, pulls)
		g.cues.LiveFire()
	} else {
		log.Printf("Roulette round %s: dry fire on pull %d", roundID, pulls)
		g.cues.DryFire()
	}
	return nil
}

// Reset returns the game to idle from the over phase
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseOver {
		return fmt.Errorf("cannot reset in phase %s", g.phase)
	}

	g.phase = PhaseIdle
	g.roundID = ""
	g.pulls = 0
	return nil
}

// Tick advances timed phases by dt seconds
func (g *Game) Tick(dt float64) {
	g.mu.Lock()

	over := false
	switch g.phase {
	case PhaseSpinning:
		g.timer -= dt
		if g.timer <= 0 {
			g.phase = PhaseReady
		}

	case PhaseClicked:
		g.timer -= dt
		if g.timer <= 0 {
			// Empty chamber survived: advance the cylinder
			g.chamber = (g.chamber + 1) % Chambers
			g.phase = PhaseReady
		}

	case PhaseFired:
		g.timer -= dt
		if g.timer <= 0 {
			g.phase = PhaseOver
			over = true
		}
	}
	roundID, pulls := g.roundID, g.pulls
	g.mu.Unlock()

	if over {
		log.Printf("Roulette round %s: over after %d pulls", roundID, pulls)
		g.cues.RoundOver(pulls - 1)
	}
}

// Phase returns the current game phase
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// RoundID returns the current round's identifier, empty while idle
func (g *Game) RoundID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundID
}

// Pulls returns the number of trigger pulls this round
func (g *Game) Pulls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pulls
}
