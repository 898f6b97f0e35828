// ABOUTME: Seamless audio looping package
// ABOUTME: Crossfades two scheduled voices around a clip's loop boundary
// Package loop makes a fixed-length clip play as an endless, seamless
// loop. It alternates two playback voices on the same clip, scheduling
// each segment start ahead of time on the audio clock and shaping both
// voices with complementary trapezoidal gain envelopes so the clip
// boundary is masked by a crossfade.
//
// The scheduler is a pure state machine: the audio clock and the two
// voices are injected, so the timing math is independent of any engine
// or device. Tick is expected once per host frame from a single
// goroutine; scheduling always looks a configurable window into the
// future so frame jitter never reaches playback.
//
// Example:
//
//	l := loop.New(mix, mix.NewVoice(), mix.NewVoice())
//	if err := l.Start(clip, loop.Config{Crossfade: 1.5}); err != nil { ... }
//	for running {
//	    l.Tick(mix.Now())
//	}
//	l.Stop()
package loop
