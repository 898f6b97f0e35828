// ABOUTME: Tests for the segment gain envelope
// ABOUTME: Tests ramp shapes, bounds and the unity-sum crossfade property
package loop

import (
	"math"
	"testing"
)

func TestEnvelopeOutsideRange(t *testing.T) {
	// Before the segment starts
	if g := Envelope(4.9, 5.0, 10.0, 1.0); g != 0 {
		t.Errorf("expected 0 before start, got %f", g)
	}

	// At or past the segment end
	if g := Envelope(15.0, 5.0, 10.0, 1.0); g != 0 {
		t.Errorf("expected 0 at end, got %f", g)
	}
	if g := Envelope(20.0, 5.0, 10.0, 1.0); g != 0 {
		t.Errorf("expected 0 past end, got %f", g)
	}
}

func TestEnvelopeZeroCrossfade(t *testing.T) {
	// With no crossfade the gain is 1 across the whole segment
	for _, offset := range []float64{0, 0.001, 5.0, 9.999} {
		if g := Envelope(offset, 0, 10.0, 0); g != 1 {
			t.Errorf("expected 1 at t=%f with zero crossfade, got %f", offset, g)
		}
	}
}

func TestEnvelopeMidpointIsUnity(t *testing.T) {
	// Exactly 1 at the midpoint whenever crossfade < duration/2
	if g := Envelope(5.0, 0, 10.0, 1.0); g != 1 {
		t.Errorf("expected 1 at midpoint, got %f", g)
	}
	if g := Envelope(5.0, 0, 10.0, 4.9); g != 1 {
		t.Errorf("expected 1 at midpoint with wide crossfade, got %f", g)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	// Half-way up the ramp-in
	if g := Envelope(0.5, 0, 10.0, 1.0); math.Abs(g-0.5) > 1e-9 {
		t.Errorf("expected 0.5 half-way up ramp, got %f", g)
	}

	// Half-way down the ramp-out
	if g := Envelope(9.5, 0, 10.0, 1.0); math.Abs(g-0.5) > 1e-9 {
		t.Errorf("expected 0.5 half-way down ramp, got %f", g)
	}
}

func TestEnvelopeSumProperty(t *testing.T) {
	// Two segments offset by duration-crossfade must sum to ~1 across
	// the overlap region
	duration := 10.0
	crossfade := 1.0
	offset := duration - crossfade // 9s

	for ts := 0.0; ts < 2*duration; ts += 0.01 {
		gA := Envelope(ts, 0, duration, crossfade)
		gB := Envelope(ts, offset, duration, crossfade)

		// Only check while at least one segment is live and we're past
		// the session lead-in ramp
		if ts >= crossfade && ts < offset+duration-crossfade {
			sum := gA + gB
			if math.Abs(sum-1.0) > 1e-9 {
				t.Fatalf("gain sum at t=%.2f: expected 1.0, got %f (A=%f B=%f)",
					ts, sum, gA, gB)
			}
		}
	}
}

func TestEnvelopeBounded(t *testing.T) {
	for ts := -1.0; ts < 12.0; ts += 0.013 {
		g := Envelope(ts, 0, 10.0, 3.0)
		if g < 0 || g > 1 {
			t.Fatalf("envelope out of [0,1] at t=%.3f: %f", ts, g)
		}
	}
}
