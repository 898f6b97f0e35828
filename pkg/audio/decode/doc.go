// ABOUTME: Audio clip loading package for multiple codec support
// ABOUTME: Decodes WAV, MP3, FLAC and Opus sources into audio.Clip buffers
// Package decode loads audio files into fully decoded clips.
//
// Supports: WAV (16-bit and 24-bit PCM), MP3, FLAC, raw Opus packets
//
// All loaders output int32 samples in 24-bit range for consistent
// processing regardless of source bit depth.
//
// Example:
//
//	clip, err := decode.Load("theme.flac")
package decode
