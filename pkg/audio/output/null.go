// ABOUTME: Null audio output implementation
// ABOUTME: Discards samples while tracking written frames, optionally pacing in real time
package output

import (
	"fmt"
	"sync"
	"time"
)

// Null output discards all samples. With Realtime set it sleeps to
// consume samples at playback speed, which lets headless runs behave
// like a real device.
type Null struct {
	Realtime bool

	mu         sync.Mutex
	sampleRate int
	channels   int
	frames     int64
	ready      bool
}

// NewNull creates a new null output
func NewNull() *Null {
	return &Null{}
}

// Open initializes the output
func (n *Null) Open(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("invalid output format: %dHz %dch", sampleRate, channels)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.sampleRate = sampleRate
	n.channels = channels
	n.ready = true
	return nil
}

// Write discards samples, tracking the frame count
func (n *Null) Write(samples []int32) error {
	n.mu.Lock()
	if !n.ready {
		n.mu.Unlock()
		return fmt.Errorf("output not initialized")
	}

	frames := len(samples) / n.channels
	n.frames += int64(frames)
	rate := n.sampleRate
	realtime := n.Realtime
	n.mu.Unlock()

	if realtime && frames > 0 {
		time.Sleep(time.Duration(frames) * time.Second / time.Duration(rate))
	}

	return nil
}

// Close releases the output
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ready = false
	return nil
}

// Frames returns the total number of frames written
func (n *Null) Frames() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.frames
}
