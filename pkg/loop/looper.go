// ABOUTME: Seamless loop scheduler over two alternating playback voices
// ABOUTME: Computes segment schedules and crossfade gains against an audio clock
package loop

import (
	"errors"
	"log"
	"math"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/google/uuid"
)

var (
	// ErrInvalidClip means the clip holds no playable audio
	ErrInvalidClip = errors.New("clip has zero duration")

	// ErrInvalidConfig means the crossfade leaves no usable stride
	ErrInvalidConfig = errors.New("crossfade leaves no playable stride")
)

const (
	// maxCrossfadeRatio stays just under half the clip so the stride
	// can never collapse to zero on float edge cases at exactly 0.5
	maxCrossfadeRatio = 0.49

	// minStartOffset is the smallest usable gap between the two voices
	minStartOffset = 0.001

	// minLookahead keeps scheduling ahead of playback even when the
	// caller passes no lookahead
	minLookahead = 0.05
)

// notScheduled marks segment times with no pending schedule, so a
// stale Tick after Stop never fires
var notScheduled = math.Inf(-1)

// Clock provides the current audio time in seconds. It must be
// monotonic and independent of the caller's frame rate.
type Clock interface {
	Now() float64
}

// Voice is a playback handle owned exclusively by one Looper. It plays
// its bound clip from a scheduled absolute start time at a settable gain.
type Voice interface {
	SetClip(clip *audio.Clip)
	ScheduleStart(at float64)
	SetGain(gain float64)
	Stop()
}

// Config holds loop parameters
type Config struct {
	// Crossfade is the overlap window in seconds. Clamped to at most
	// 49% of the clip duration.
	Crossfade float64

	// Lookahead is how far ahead of the audio clock segment starts are
	// issued. Raised to a floor when too small.
	Lookahead float64

	// BaseVolume is the target playback gain in [0, 1] (default: 1)
	BaseVolume float64
}

// segment tracks one of the two alternating voices
type segment struct {
	voice Voice
	start float64 // scheduled start time of the active segment
	next  float64 // when this voice starts again
	gain  float64
}

// Session is a read-only snapshot of the running loop state
type Session struct {
	ID         string
	Clip       string
	Duration   float64
	Crossfade  float64
	Stride     float64
	Lookahead  float64
	BaseVolume float64
	StartA     float64
	StartB     float64
	NextA      float64
	NextB      float64
	GainA      float64
	GainB      float64
}

// Looper owns two alternating voices for one clip and keeps them
// scheduled so the clip loops without an audible seam. All methods are
// expected from a single goroutine (the host update loop).
type Looper struct {
	clock Clock
	segA  segment
	segB  segment

	running bool
	id      string
	clip    *audio.Clip
	pending *audio.Clip
	cfg     Config

	duration   float64
	crossfade  float64
	stride     float64
	lookahead  float64
	baseVolume float64
}

// New creates a looper over an audio clock and two voices
func New(clock Clock, a, b Voice) *Looper {
	return &Looper{
		clock: clock,
		segA:  segment{voice: a, start: notScheduled, next: notScheduled},
		segB:  segment{voice: b, start: notScheduled, next: notScheduled},
	}
}

// Start establishes a loop schedule for the clip. On failure the
// looper is left not running; playback is never crashed.
func (l *Looper) Start(clip *audio.Clip, cfg Config) error {
	if clip.Empty() || clip.Duration() <= 0 {
		l.Stop()
		return ErrInvalidClip
	}

	duration := clip.Duration()

	crossfade := cfg.Crossfade
	if crossfade < 0 {
		crossfade = 0
	}
	if max := maxCrossfadeRatio * duration; crossfade > max {
		log.Printf("Loop crossfade %.3fs clamped to %.3fs for %.3fs clip",
			cfg.Crossfade, max, duration)
		crossfade = max
	}

	startOffset := duration - crossfade
	if startOffset <= minStartOffset {
		l.Stop()
		return ErrInvalidConfig
	}

	baseVolume := cfg.BaseVolume
	if baseVolume == 0 {
		baseVolume = 1.0
	}
	baseVolume = clamp01(baseVolume)

	lookahead := cfg.Lookahead
	if lookahead < minLookahead {
		lookahead = minLookahead
	}

	// Tear down whatever was playing before
	l.segA.voice.Stop()
	l.segB.voice.Stop()
	l.segA.voice.SetGain(0)
	l.segB.voice.SetGain(0)

	l.segA.voice.SetClip(clip)
	l.segB.voice.SetClip(clip)

	l.clip = clip
	l.pending = nil
	l.cfg = cfg
	l.duration = duration
	l.crossfade = crossfade
	l.stride = 2 * startOffset
	l.lookahead = lookahead
	l.baseVolume = baseVolume

	now := l.clock.Now()
	l.segA.start = now + lookahead
	l.segB.start = l.segA.start + startOffset
	l.segA.next = l.segA.start + l.stride
	l.segB.next = l.segB.start + l.stride
	l.segA.gain = 0
	l.segB.gain = 0

	l.segA.voice.ScheduleStart(l.segA.start)
	l.segB.voice.ScheduleStart(l.segB.start)

	l.running = true
	l.id = uuid.New().String()

	log.Printf("Loop session %s: clip=%s duration=%.3fs crossfade=%.3fs stride=%.3fs",
		l.id, clip.Name, duration, crossfade, l.stride)

	return nil
}

// Tick re-schedules upcoming segments and updates crossfade gains.
// Call once per host frame with the current audio clock time.
func (l *Looper) Tick(now float64) {
	if !l.running {
		return
	}

	// A swapped clip invalidates every timing assumption; restart
	// cleanly from the new clip's duration.
	if l.pending != nil {
		if l.pending != l.clip {
			swap := l.pending
			log.Printf("Loop session %s: clip swapped to %s, restarting", l.id, swap.Name)
			if err := l.Start(swap, l.cfg); err != nil {
				log.Printf("Loop restart failed: %v", err)
			}
			return
		}
		l.pending = nil
	}

	l.schedule(&l.segA, now)
	l.schedule(&l.segB, now)

	l.segA.gain = Envelope(now, l.segA.start, l.duration, l.crossfade) * l.baseVolume
	l.segB.gain = Envelope(now, l.segB.start, l.duration, l.crossfade) * l.baseVolume
	l.segA.voice.SetGain(l.segA.gain)
	l.segB.voice.SetGain(l.segB.gain)
}

// schedule issues the segment's next start once the lookahead window
// reaches it, keeping every loop iteration scheduled ahead of playback
func (l *Looper) schedule(seg *segment, now float64) {
	for now+l.lookahead >= seg.next {
		seg.voice.ScheduleStart(seg.next)
		seg.start = seg.next
		seg.next += l.stride
	}
}

// SetBaseVolume adjusts the playback gain of a running session. The
// new level is applied by the next Tick's envelope pass.
func (l *Looper) SetBaseVolume(v float64) {
	l.baseVolume = clamp01(v)
	l.cfg.BaseVolume = l.baseVolume
}

// SetClip swaps the loop onto a new clip. The swap is applied on the
// next Tick as a full restart so stride and duration stay consistent.
func (l *Looper) SetClip(clip *audio.Clip) {
	l.pending = clip
}

// Stop tears the session down. Idempotent: calling it again is a no-op.
func (l *Looper) Stop() {
	if !l.running {
		return
	}

	l.segA.voice.Stop()
	l.segB.voice.Stop()

	// Rest state: primary voice back at base volume, secondary silent
	l.segA.voice.SetGain(l.baseVolume)
	l.segB.voice.SetGain(0)
	l.segA.gain = l.baseVolume
	l.segB.gain = 0

	l.segA.start = notScheduled
	l.segA.next = notScheduled
	l.segB.start = notScheduled
	l.segB.next = notScheduled

	l.running = false
	log.Printf("Loop session %s stopped", l.id)
}

// IsRunning reports whether a loop session is active
func (l *Looper) IsRunning() bool {
	return l.running
}

// Session returns a snapshot of the current loop state for display
func (l *Looper) Session() Session {
	s := Session{
		ID:         l.id,
		Duration:   l.duration,
		Crossfade:  l.crossfade,
		Stride:     l.stride,
		Lookahead:  l.lookahead,
		BaseVolume: l.baseVolume,
		StartA:     l.segA.start,
		StartB:     l.segB.start,
		NextA:      l.segA.next,
		NextB:      l.segB.next,
		GainA:      l.segA.gain,
		GainB:      l.segB.gain,
	}
	if l.clip != nil {
		s.Clip = l.clip.Name
	}
	return s
}
