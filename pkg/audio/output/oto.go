// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM to the system device through a persistent pipe
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using the oto library
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		log.Printf("Audio output already initialized with same format, reusing context")
		return nil
	}

	// oto only allows one context per process, so a format change keeps
	// the existing context
	if o.otoCtx != nil {
		log.Printf("Warning: format change detected (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []int32) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	// Convert int32 samples to int16 bytes for oto (16-bit output)
	buf := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(audio.SampleToInt16(sample)))
	}

	// Write to pipe (which feeds the persistent player)
	if _, err := o.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}
