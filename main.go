// ABOUTME: Entry point for the Loopline demo player
// ABOUTME: Parses CLI flags and runs a seamless loop session with a TUI
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Loopline-Audio/loopline-go/internal/ui"
	"github.com/Loopline-Audio/loopline-go/internal/version"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/decode"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/mixer"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/output"
	"github.com/Loopline-Audio/loopline-go/pkg/loop"
)

var (
	clipPath   = flag.String("clip", "", "Audio file to loop (wav, mp3, flac)")
	crossfade  = flag.Float64("crossfade", 1.0, "Crossfade overlap in seconds")
	lookahead  = flag.Float64("lookahead", 0.2, "Scheduling lookahead in seconds")
	volume     = flag.Float64("volume", 1.0, "Playback gain (0.0 - 1.0)")
	sampleRate = flag.Int("sample-rate", 48000, "Output sample rate in Hz")
	logFile    = flag.String("log-file", "loopline-player.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
)

func main() {
	flag.Parse()

	if *clipPath == "" {
		log.Fatalf("no clip given: use -clip <file>")
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	clip, err := decode.Load(*clipPath)
	if err != nil {
		log.Fatalf("Failed to load clip: %v", err)
	}
	log.Printf("Loaded %s: %.3fs %dHz %dch",
		clip.Name, clip.Duration(), clip.Format.SampleRate, clip.Format.Channels)

	mix, err := mixer.New(output.NewOto(), *sampleRate, 2)
	if err != nil {
		log.Fatalf("Failed to open audio output: %v", err)
	}
	go mix.Run()

	looper := loop.New(mix, mix.NewVoice(), mix.NewVoice())
	err = looper.Start(clip, loop.Config{
		Crossfade:  *crossfade,
		Lookahead:  *lookahead,
		BaseVolume: *volume,
	})
	if err != nil {
		log.Fatalf("Failed to start loop: %v", err)
	}

	// TUI setup
	var tuiProg *tea.Program
	var volumeCtrl *ui.VolumeControl

	if useTUI {
		volumeCtrl = ui.NewVolumeControl()
		tuiProg, err = ui.Run(volumeCtrl)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	}

	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	// Drive the loop scheduler off the audio clock. Volume changes are
	// applied on the same goroutine as Tick; the looper is not
	// goroutine-safe.
	done := make(chan struct{})
	tickStopped := make(chan struct{})
	go func() {
		defer close(tickStopped)
		tickLoop(looper, mix, *volume, volumeCtrl, updateTUI, done)
	}()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if volumeCtrl != nil {
		select {
		case <-volumeCtrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
		}
	} else {
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	// Join the tick goroutine before tearing the looper down; a Tick
	// already in flight must not interleave with Stop
	close(done)
	<-tickStopped
	looper.Stop()
	mix.Stop()

	log.Printf("Player stopped")
}

// tickLoop advances the loop scheduler, applies TUI volume changes, and
// feeds session state back to the TUI
func tickLoop(looper *loop.Looper, mix *mixer.Mixer, baseVolume float64,
	volumeCtrl *ui.VolumeControl, updateTUI func(ui.StatusMsg), done chan struct{}) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	statusTicker := time.NewTicker(200 * time.Millisecond)
	defer statusTicker.Stop()

	var changes chan ui.VolumeChangeMsg
	if volumeCtrl != nil {
		changes = volumeCtrl.Changes
	}

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			looper.Tick(mix.Now())
		case vol := <-changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			if vol.Muted {
				looper.SetBaseVolume(0)
			} else {
				looper.SetBaseVolume(baseVolume * float64(vol.Volume) / 100.0)
			}
		case <-statusTicker.C:
			running := looper.IsRunning()
			session := looper.Session()
			updateTUI(ui.StatusMsg{
				Running: &running,
				Session: &session,
				Now:     mix.Now(),
			})
		}
	}
}
