// ABOUTME: Gain envelope math for loop segments
// ABOUTME: Produces trapezoidal fades whose overlapping sum stays at unity
package loop

// Envelope returns the instantaneous gain in [0, 1] for a segment that
// started at start, given the clip duration and crossfade window. The
// shape is a trapezoid: linear ramp-up over the crossfade, flat 1 in
// the middle, linear ramp-down over the final crossfade. Two segments
// offset by duration-crossfade therefore sum to ~1 across the seam.
func Envelope(now, start, duration, crossfade float64) float64 {
	t := now - start

	if t < 0 || t >= duration {
		return 0
	}

	if crossfade == 0 {
		return 1
	}

	if t < crossfade {
		return clamp01(t / crossfade)
	}
	if t > duration-crossfade {
		return clamp01((duration - t) / crossfade)
	}
	return 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
