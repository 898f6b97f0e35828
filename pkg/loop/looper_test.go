// ABOUTME: Tests for the loop scheduler
// ABOUTME: Tests schedule math, lookahead re-scheduling, clip swaps and teardown
package loop

import (
	"math"
	"testing"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
)

// fakeClock is a settable audio clock
type fakeClock struct {
	t float64
}

func (c *fakeClock) Now() float64 { return c.t }

// fakeVoice records every scheduling call
type fakeVoice struct {
	clip   *audio.Clip
	starts []float64
	gains  []float64
	stops  int
}

func (v *fakeVoice) SetClip(clip *audio.Clip) { v.clip = clip }
func (v *fakeVoice) ScheduleStart(at float64) { v.starts = append(v.starts, at) }
func (v *fakeVoice) SetGain(gain float64)     { v.gains = append(v.gains, gain) }
func (v *fakeVoice) Stop()                    { v.stops++ }

func (v *fakeVoice) lastGain() float64 {
	if len(v.gains) == 0 {
		return -1
	}
	return v.gains[len(v.gains)-1]
}

func (v *fakeVoice) lastStart() float64 {
	if len(v.starts) == 0 {
		return math.NaN()
	}
	return v.starts[len(v.starts)-1]
}

// testClip builds a clip with the given duration at 48kHz mono
func testClip(name string, seconds float64) *audio.Clip {
	frames := int(seconds * 48000)
	return &audio.Clip{
		Name:    name,
		Samples: make([]int32, frames),
		Format:  audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 16},
	}
}

func newTestLooper() (*Looper, *fakeClock, *fakeVoice, *fakeVoice) {
	clock := &fakeClock{}
	a := &fakeVoice{}
	b := &fakeVoice{}
	return New(clock, a, b), clock, a, b
}

func TestStartScheduleMath(t *testing.T) {
	l, clock, a, b := newTestLooper()
	clock.t = 100.0

	// duration=10s, crossfade=1s: stride=18s, B offset 9s
	err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0, Lookahead: 0.2})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if !l.IsRunning() {
		t.Fatal("expected looper running after start")
	}

	s := l.Session()

	if math.Abs(s.Stride-18.0) > 1e-9 {
		t.Errorf("expected stride 18s, got %f", s.Stride)
	}
	if math.Abs(s.StartA-100.2) > 1e-9 {
		t.Errorf("expected A start at 100.2, got %f", s.StartA)
	}
	if math.Abs(s.StartB-(s.StartA+9.0)) > 1e-9 {
		t.Errorf("expected B start 9s after A, got A=%f B=%f", s.StartA, s.StartB)
	}
	if math.Abs(s.NextA-(s.StartA+18.0)) > 1e-9 {
		t.Errorf("expected A next one stride after start, got %f", s.NextA)
	}

	if len(a.starts) != 1 || math.Abs(a.starts[0]-100.2) > 1e-9 {
		t.Errorf("expected one A start at 100.2, got %v", a.starts)
	}
	if len(b.starts) != 1 || math.Abs(b.starts[0]-109.2) > 1e-9 {
		t.Errorf("expected one B start at 109.2, got %v", b.starts)
	}
}

func TestStartSegmentOffsetInvariant(t *testing.T) {
	l, _, _, _ := newTestLooper()

	for _, crossfade := range []float64{0, 0.5, 1.0, 3.0} {
		if err := l.Start(testClip("bed", 8.0), Config{Crossfade: crossfade}); err != nil {
			t.Fatalf("start failed at crossfade %f: %v", crossfade, err)
		}

		s := l.Session()
		wantOffset := s.Stride / 2
		if math.Abs((s.StartB-s.StartA)-wantOffset) > 1e-9 {
			t.Errorf("crossfade %f: segment offset %f != stride/2 %f",
				crossfade, s.StartB-s.StartA, wantOffset)
		}
		if s.Stride <= 0 {
			t.Errorf("crossfade %f: stride %f not positive", crossfade, s.Stride)
		}
	}
}

func TestStartInvalidClip(t *testing.T) {
	l, _, _, _ := newTestLooper()

	if err := l.Start(nil, Config{}); err != ErrInvalidClip {
		t.Errorf("expected ErrInvalidClip for nil clip, got %v", err)
	}
	if l.IsRunning() {
		t.Error("expected looper not running after invalid clip")
	}

	if err := l.Start(&audio.Clip{}, Config{}); err != ErrInvalidClip {
		t.Errorf("expected ErrInvalidClip for empty clip, got %v", err)
	}
}

func TestStartDegenerateStride(t *testing.T) {
	l, _, _, _ := newTestLooper()

	// ~1.5ms clip: after the 49% clamp the start offset is under the
	// 1ms floor
	tiny := testClip("tiny", 0.0015)
	if err := l.Start(tiny, Config{Crossfade: 1.0}); err != ErrInvalidConfig {
		t.Errorf("expected ErrInvalidConfig for degenerate stride, got %v", err)
	}
	if l.IsRunning() {
		t.Error("expected looper not running after invalid config")
	}
}

func TestCrossfadeClamped(t *testing.T) {
	l, _, _, _ := newTestLooper()

	// Request 60% of duration; expect 49%
	err := l.Start(testClip("bed", 10.0), Config{Crossfade: 6.0})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()
	if math.Abs(s.Crossfade-4.9) > 1e-9 {
		t.Errorf("expected crossfade clamped to 4.9, got %f", s.Crossfade)
	}
	// Stride computed from the clamped value
	if math.Abs(s.Stride-2*(10.0-4.9)) > 1e-9 {
		t.Errorf("expected stride %f, got %f", 2*(10.0-4.9), s.Stride)
	}
}

func TestLookaheadFloor(t *testing.T) {
	l, clock, _, _ := newTestLooper()
	clock.t = 50.0

	if err := l.Start(testClip("bed", 10.0), Config{}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()
	if s.Lookahead != 0.05 {
		t.Errorf("expected lookahead raised to 0.05, got %f", s.Lookahead)
	}
	if math.Abs(s.StartA-50.05) > 1e-9 {
		t.Errorf("expected A start at now+minimum lookahead, got %f", s.StartA)
	}
}

func TestTickReschedulesWithinLookahead(t *testing.T) {
	l, clock, a, _ := newTestLooper()

	err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0, Lookahead: 0.5})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()
	nextA := s.NextA // start + 18s

	// Well before the lookahead window reaches A's next start: no new schedule
	clock.t = nextA - 1.0
	l.Tick(clock.t)
	if len(a.starts) != 1 {
		t.Fatalf("expected no re-schedule outside lookahead, got %v", a.starts)
	}

	// Inside the window: exactly one new start at the stored next time
	clock.t = nextA - 0.4
	l.Tick(clock.t)
	if len(a.starts) != 2 {
		t.Fatalf("expected re-schedule inside lookahead, got %v", a.starts)
	}
	if math.Abs(a.lastStart()-nextA) > 1e-9 {
		t.Errorf("expected new start at %f, got %f", nextA, a.lastStart())
	}

	s = l.Session()
	if math.Abs(s.StartA-nextA) > 1e-9 {
		t.Errorf("expected segment start advanced to %f, got %f", nextA, s.StartA)
	}
	if math.Abs(s.NextA-(nextA+s.Stride)) > 1e-9 {
		t.Errorf("expected next advanced one stride, got %f", s.NextA)
	}
}

func TestTickGainsFollowEnvelope(t *testing.T) {
	l, clock, a, b := newTestLooper()

	err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0, Lookahead: 0.1, BaseVolume: 0.8})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()

	// Mid-segment for A, before B starts: A at base volume, B silent
	clock.t = s.StartA + 5.0
	l.Tick(clock.t)
	if math.Abs(a.lastGain()-0.8) > 1e-9 {
		t.Errorf("expected A gain 0.8 mid-segment, got %f", a.lastGain())
	}
	if b.lastGain() != 0 {
		t.Errorf("expected B gain 0 before its start, got %f", b.lastGain())
	}

	// Centre of the overlap window: gains sum to the base volume
	clock.t = s.StartA + 9.5
	l.Tick(clock.t)
	sum := a.lastGain() + b.lastGain()
	if math.Abs(sum-0.8) > 1e-9 {
		t.Errorf("expected crossfade gains to sum to 0.8, got %f (A=%f B=%f)",
			sum, a.lastGain(), b.lastGain())
	}
}

func TestStopIdempotent(t *testing.T) {
	l, _, a, b := newTestLooper()

	if err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	l.Stop()

	if l.IsRunning() {
		t.Fatal("expected not running after stop")
	}
	if a.stops != 2 { // one from Start's teardown, one from Stop
		t.Errorf("expected 2 stops on A, got %d", a.stops)
	}
	if a.lastGain() != 1.0 {
		t.Errorf("expected A gain restored to base volume, got %f", a.lastGain())
	}
	if b.lastGain() != 0 {
		t.Errorf("expected B gain 0 after stop, got %f", b.lastGain())
	}

	// Second stop changes nothing
	stopsA, gainsA := a.stops, len(a.gains)
	l.Stop()
	if a.stops != stopsA || len(a.gains) != gainsA {
		t.Error("expected second stop to be a no-op")
	}
}

func TestStaleTickAfterStop(t *testing.T) {
	l, clock, a, _ := newTestLooper()

	if err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	l.Stop()

	schedules := len(a.starts)
	gains := len(a.gains)

	clock.t = 10000.0
	l.Tick(clock.t)

	if len(a.starts) != schedules {
		t.Error("stale tick issued a schedule after stop")
	}
	if len(a.gains) != gains {
		t.Error("stale tick touched gains after stop")
	}
}

func TestClipSwapRestartsSession(t *testing.T) {
	l, clock, a, _ := newTestLooper()

	if err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	firstID := l.Session().ID
	firstStride := l.Session().Stride

	// Swap to a clip with a different duration mid-session
	clock.t = 3.0
	l.SetClip(testClip("storm", 6.0))
	l.Tick(clock.t)

	if !l.IsRunning() {
		t.Fatal("expected looper running after swap restart")
	}

	s := l.Session()
	if s.ID == firstID {
		t.Error("expected a new session ID after clip swap")
	}
	if s.Clip != "storm" {
		t.Errorf("expected session on new clip, got %q", s.Clip)
	}
	if math.Abs(s.Stride-2*(6.0-1.0)) > 1e-9 {
		t.Errorf("expected stride recomputed from new duration, got %f", s.Stride)
	}
	if s.Stride == firstStride {
		t.Error("expected stride to change with the new clip")
	}

	// Schedule restarted from the current clock
	if math.Abs(s.StartA-(3.0+0.05)) > 1e-9 {
		t.Errorf("expected restart schedule from now, got %f", s.StartA)
	}
	if a.clip == nil || a.clip.Name != "storm" {
		t.Error("expected voices rebound to the new clip")
	}
}

func TestSwapToSameClipNoRestart(t *testing.T) {
	l, _, _, _ := newTestLooper()

	clip := testClip("bed", 10.0)
	if err := l.Start(clip, Config{Crossfade: 1.0}); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	id := l.Session().ID
	l.SetClip(clip)
	l.Tick(0.1)

	if l.Session().ID != id {
		t.Error("expected no restart when swapping to the same clip")
	}
}

func TestTickCatchesUpAfterStall(t *testing.T) {
	l, clock, a, _ := newTestLooper()

	err := l.Start(testClip("bed", 10.0), Config{Crossfade: 1.0, Lookahead: 0.5})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()

	// Simulate a long stall: jump several strides ahead
	clock.t = s.NextA + 2.5*s.Stride
	l.Tick(clock.t)

	s = l.Session()
	if s.NextA < clock.t+0.5 {
		t.Errorf("expected next start beyond the lookahead window after catch-up, got %f (now %f)",
			s.NextA, clock.t)
	}
	if len(a.starts) < 3 {
		t.Errorf("expected multiple catch-up schedules, got %d", len(a.starts))
	}
}

func TestSetBaseVolumeScalesEnvelope(t *testing.T) {
	l, clock, a, _ := newTestLooper()

	err := l.Start(testClip("rain", 10.0), Config{Crossfade: 1.0, Lookahead: 0.2})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	s := l.Session()

	// Mid-segment A plays at full envelope
	clock.t = s.StartA + 5.0
	l.Tick(clock.t)
	if math.Abs(a.lastGain()-1.0) > 1e-9 {
		t.Fatalf("expected full gain before adjustment, got %f", a.lastGain())
	}

	l.SetBaseVolume(0.25)
	l.Tick(clock.t)
	if math.Abs(a.lastGain()-0.25) > 1e-9 {
		t.Errorf("expected scaled gain after adjustment, got %f", a.lastGain())
	}

	// Out-of-range values clamp
	l.SetBaseVolume(3.0)
	l.Tick(clock.t)
	if a.lastGain() != 1.0 {
		t.Errorf("expected clamped gain 1.0, got %f", a.lastGain())
	}
}
