// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface, oto device backend and a null backend
// Package output provides audio playback interfaces.
//
// The Oto backend plays through the system audio device; the Null
// backend discards samples and is used in tests and headless runs.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2)
//	err = out.Write(samples)
package output
