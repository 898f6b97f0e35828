// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Clip types and sample conversion functions
// Package audio provides fundamental audio types for the loopline library.
//
// This package defines core types used throughout loopline:
//   - Format: Describes PCM format (sample rate, channels, bit depth)
//   - Clip: A fully decoded, fixed-length audio buffer
//
// It also provides utilities for converting between sample formats:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	clip := &audio.Clip{
//	    Name:    "theme",
//	    Samples: samples,
//	    Format:  audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16},
//	}
//	seconds := clip.Duration()
package audio
