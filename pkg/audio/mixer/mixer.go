// ABOUTME: Software mixer providing schedulable playback voices
// ABOUTME: Renders voices into an Output and exposes a sample-accurate clock
package mixer

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/output"
	"github.com/Loopline-Audio/loopline-go/pkg/audio/resample"
)

const (
	// ChunkDurationMs is the render quantum
	ChunkDurationMs = 20
)

// inactive marks a voice slot with no scheduled start
var inactive = math.Inf(-1)

// Mixer renders voices into an output device. Its clock advances with
// rendered frames, independent of the caller's frame rate.
type Mixer struct {
	mu         sync.Mutex
	out        output.Output
	sampleRate int
	channels   int
	frames     int64 // frames rendered so far
	voices     []*Voice

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a mixer and opens the output device
func New(out output.Output, sampleRate, channels int) (*Mixer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid mixer format: %dHz %dch", sampleRate, channels)
	}

	if err := out.Open(sampleRate, channels); err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}

	return &Mixer{
		out:        out,
		sampleRate: sampleRate,
		channels:   channels,
		stopChan:   make(chan struct{}),
	}, nil
}

// Now returns the mixer clock in seconds (frames rendered / sample rate)
func (m *Mixer) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.frames) / float64(m.sampleRate)
}

// SampleRate returns the mixer's sample rate
func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// NewVoice allocates a persistent playback voice
func (m *Mixer) NewVoice() *Voice {
	v := &Voice{
		mixer:   m,
		current: inactive,
		next:    inactive,
	}

	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()

	return v
}

// PlayOneShot plays a clip once at the given gain, starting immediately.
// The transient voice is reaped when the clip finishes.
func (m *Mixer) PlayOneShot(clip *audio.Clip, gain float64) {
	if clip.Empty() {
		log.Printf("Ignoring one-shot for empty clip")
		return
	}

	clip = resample.Convert(clip, m.sampleRate)

	m.mu.Lock()
	defer m.mu.Unlock()

	v := &Voice{
		mixer:   m,
		clip:    clip,
		gain:    clampGain(gain),
		current: float64(m.frames) / float64(m.sampleRate),
		next:    inactive,
		oneShot: true,
	}
	m.voices = append(m.voices, v)
}

// Run renders chunks into the output until Stop is called. The output's
// own pacing (device buffer backpressure) throttles the loop.
func (m *Mixer) Run() {
	chunkFrames := m.sampleRate * ChunkDurationMs / 1000

	for {
		select {
		case <-m.stopChan:
			return
		default:
		}

		chunk := m.renderChunk(chunkFrames)
		if err := m.out.Write(chunk); err != nil {
			log.Printf("Mixer output error: %v", err)
			return
		}
	}
}

// Stop stops the render loop
func (m *Mixer) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

// renderChunk mixes all voices for the next n frames and advances the clock
func (m *Mixer) renderChunk(n int) []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	chunk := make([]int32, n*m.channels)
	rate := float64(m.sampleRate)

	for i := 0; i < n; i++ {
		t := float64(m.frames+int64(i)) / rate

		for _, v := range m.voices {
			v.mix(chunk[i*m.channels:(i+1)*m.channels], t, rate)
		}
	}

	m.frames += int64(n)

	// Reap finished one-shot voices
	endTime := float64(m.frames) / rate
	kept := m.voices[:0]
	for _, v := range m.voices {
		if v.oneShot && v.finished(endTime) {
			continue
		}
		kept = append(kept, v)
	}
	m.voices = kept

	return chunk
}

// Voice is an exclusive playback handle bound to one clip. Starts are
// scheduled at absolute mixer times; a voice holds at most the current
// segment plus one pending start.
type Voice struct {
	mixer   *Mixer
	clip    *audio.Clip
	gain    float64
	current float64 // absolute start time of the active segment
	next    float64 // pending scheduled start
	oneShot bool
}

// SetClip binds a clip to the voice, resampling to the mixer rate if needed
func (v *Voice) SetClip(clip *audio.Clip) {
	if clip != nil && !clip.Empty() {
		clip = resample.Convert(clip, v.mixer.sampleRate)
	}

	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.clip = clip
}

// ScheduleStart schedules playback of the bound clip at an absolute
// mixer time. While a segment is active the start is queued as the
// pending one; otherwise it becomes the active segment start.
func (v *Voice) ScheduleStart(at float64) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()

	if math.IsInf(v.current, -1) {
		v.current = at
	} else {
		v.next = at
	}
}

// SetGain sets the voice output level, clamped to [0, 1]
func (v *Voice) SetGain(gain float64) {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.gain = clampGain(gain)
}

// Gain returns the current voice gain
func (v *Voice) Gain() float64 {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	return v.gain
}

// Clip returns the currently bound clip
func (v *Voice) Clip() *audio.Clip {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	return v.clip
}

// Stop cancels the active segment and any pending start
func (v *Voice) Stop() {
	v.mixer.mu.Lock()
	defer v.mixer.mu.Unlock()
	v.current = inactive
	v.next = inactive
}

// mix accumulates this voice's contribution for one frame at time t.
// Caller holds the mixer lock.
func (v *Voice) mix(frame []int32, t, rate float64) {
	// Promote the pending start once its time arrives
	if !math.IsInf(v.next, -1) && t >= v.next {
		v.current = v.next
		v.next = inactive
	}

	if math.IsInf(v.current, -1) || v.clip.Empty() || t < v.current {
		return
	}

	idx := int(math.Round((t - v.current) * rate))
	if idx < 0 || idx >= v.clip.Frames() {
		return
	}

	channels := v.clip.Format.Channels
	for ch := range frame {
		src := ch
		if src >= channels {
			src = channels - 1 // mono clips feed every output channel
		}

		sample := int64(float64(v.clip.Samples[idx*channels+src]) * v.gain)
		mixed := int64(frame[ch]) + sample

		if mixed > audio.Max24Bit {
			mixed = audio.Max24Bit
		} else if mixed < audio.Min24Bit {
			mixed = audio.Min24Bit
		}
		frame[ch] = int32(mixed)
	}
}

// finished reports whether the voice has no audible or pending segment
// at the given time. Caller holds the mixer lock.
func (v *Voice) finished(t float64) bool {
	if !math.IsInf(v.next, -1) {
		return false
	}
	if math.IsInf(v.current, -1) {
		return true
	}
	return t >= v.current+v.clip.Duration()
}

func clampGain(g float64) float64 {
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}
	return g
}
