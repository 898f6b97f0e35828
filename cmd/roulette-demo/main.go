// ABOUTME: Terminal demo of the roulette minigame
// ABOUTME: Wires game cues to mixer one-shots, stage sets and a scene fade
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/Loopline-Audio/loopline-go/internal/roulette"
	"github.com/Loopline-Audio/loopline-go/internal/stage"
	"github.com/Loopline-Audio/loopline-go/internal/transition"
	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/decode"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/mixer"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/output"
)

var (
	spinClip  = flag.String("spin-clip", "", "Sound for the cylinder spin (default: synthesized)")
	clickClip = flag.String("click-clip", "", "Sound for a dry fire (default: synthesized)")
	fireClip  = flag.String("fire-clip", "", "Sound for a live fire (default: synthesized)")
	silent    = flag.Bool("silent", false, "Use a null audio output")
)

const demoSampleRate = 48000

// soundCues plays a clip per game event and kicks the scene fade
type soundCues struct {
	mix   *mixer.Mixer
	fade  *transition.Manager
	spin  *audio.Clip
	click *audio.Clip
	fire  *audio.Clip
}

func (c *soundCues) SpinStarted() {
	c.mix.PlayOneShot(c.spin, 0.8)
	fmt.Println("The cylinder spins...")
}

func (c *soundCues) DryFire() {
	c.mix.PlayOneShot(c.click, 1.0)
	fmt.Println("Click.")
}

func (c *soundCues) LiveFire() {
	c.mix.PlayOneShot(c.fire, 1.0)
	fmt.Println("BANG.")
}

func (c *soundCues) RoundOver(survived int) {
	fmt.Printf("Round over. Survived %d pulls.\n", survived)
	if err := c.fade.Begin("aftermath"); err != nil {
		log.Printf("Fade refused: %v", err)
	}
}

// consoleOverlay prints the fade level as it changes coarsely
type consoleOverlay struct {
	last int
}

func (o *consoleOverlay) SetAlpha(alpha float64) {
	step := int(alpha * 4)
	if step != o.last {
		o.last = step
		fmt.Printf("  [fade %3.0f%%]\n", alpha*100)
	}
}

// instantLoader switches scenes via the stage sets
type instantLoader struct {
	sets  *stage.Sets
	scene string
}

func (l *instantLoader) StartLoad(scene string) { l.scene = scene }
func (l *instantLoader) Progress() float64      { return 1 }
func (l *instantLoader) Ready() bool            { return l.scene != "" }

func (l *instantLoader) Activate() error {
	return l.sets.ShowOnly(l.scene)
}

// consoleProp announces its visibility flips
type consoleProp struct {
	name string
}

func (p *consoleProp) SetVisible(visible bool) {
	if visible {
		fmt.Printf("  [scene: %s]\n", p.name)
	}
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	var out output.Output
	if *silent {
		out = output.NewNull()
	} else {
		out = output.NewOto()
	}

	mix, err := mixer.New(out, demoSampleRate, 2)
	if err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	go mix.Run()
	defer mix.Stop()

	sets := stage.NewSets()
	sets.Register("table", &consoleProp{name: "table"})
	sets.Register("aftermath", &consoleProp{name: "aftermath"})
	if err := sets.ShowOnly("table"); err != nil {
		log.Fatalf("Stage setup failed: %v", err)
	}

	loader := &instantLoader{sets: sets}
	fade := transition.New(&consoleOverlay{last: -1}, loader, transition.Config{
		FadeOut: 0.4,
		FadeIn:  0.4,
	})

	cues := &soundCues{
		mix:   mix,
		fade:  fade,
		spin:  loadOrTone(*spinClip, "spin", 220, 1.2),
		click: loadOrTone(*clickClip, "click", 1200, 0.05),
		fire:  loadOrTone(*fireClip, "fire", 80, 0.5),
	}

	game := roulette.New(cues, roulette.Config{})

	// Drive timed phases in the background
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				game.Tick(0.01)
				fade.Tick(0.01)
			}
		}
	}()
	defer close(done)

	fmt.Println("Commands: spin, pull, reset, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", game.Phase())
		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "spin":
			if err := game.Spin(); err != nil {
				fmt.Println(err)
			}
		case "pull":
			if err := game.PullTrigger(); err != nil {
				fmt.Println(err)
			}
		case "reset":
			if err := game.Reset(); err != nil {
				fmt.Println(err)
			}
		case "quit":
			return
		case "":
		default:
			fmt.Println("Commands: spin, pull, reset, quit")
		}
	}
}

// loadOrTone loads a clip from disk or falls back to a synthesized tone
func loadOrTone(path, name string, freq float64, seconds float64) *audio.Clip {
	if path != "" {
		clip, err := decode.Load(path)
		if err == nil {
			return clip
		}
		log.Printf("Failed to load %s, using tone: %v", path, err)
	}

	frames := int(seconds * demoSampleRate)
	samples := make([]int32, frames)
	for i := range samples {
		// Decaying sine so the tone doesn't click at the tail
		t := float64(i) / demoSampleRate
		env := 1.0 - t/seconds
		samples[i] = int32(math.Sin(2*math.Pi*freq*t) * env * float64(audio.Max24Bit) * 0.5)
	}

	return &audio.Clip{
		Name:    name,
		Samples: samples,
		Format:  audio.Format{SampleRate: demoSampleRate, Channels: 1, BitDepth: 24},
	}
}
