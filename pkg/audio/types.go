// ABOUTME: Audio type definitions
// ABOUTME: Defines clip buffers, formats and sample conversions
package audio

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes PCM audio format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Clip is a fully decoded audio buffer. Samples are interleaved int32
// in 24-bit range regardless of source bit depth. Clips are treated as
// immutable once created.
type Clip struct {
	Name    string
	Samples []int32 // interleaved PCM
	Format  Format
}

// Frames returns the number of sample frames in the clip
func (c *Clip) Frames() int {
	if c == nil || c.Format.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Format.Channels
}

// Duration returns the clip length in seconds
func (c *Clip) Duration() float64 {
	if c == nil || c.Format.SampleRate == 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.Format.SampleRate)
}

// Empty reports whether the clip holds no playable audio
func (c *Clip) Empty() bool {
	return c == nil || len(c.Samples) == 0 || c.Format.SampleRate <= 0
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	// Left-shift to position 16-bit value in upper bits
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
