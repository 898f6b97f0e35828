// ABOUTME: Playback sink abstraction for rendered audio
// ABOUTME: Consumes interleaved int32 samples in the 24-bit range
package output

// Output is a playback sink for mixed audio. Samples arrive as
// interleaved int32 values in the 24-bit range used throughout the
// pipeline; implementations narrow them to whatever the device takes.
type Output interface {
	// Open prepares the sink for the given stream format
	Open(sampleRate, channels int) error

	// Write plays one chunk of interleaved samples, blocking until the
	// sink has accepted it. That backpressure paces the mixer's render
	// loop.
	Write(samples []int32) error

	// Close releases the sink
	Close() error
}
