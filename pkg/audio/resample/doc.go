// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between different sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling, either chunk-by-chunk via
// Resampler or for whole clips via Convert.
//
// Example:
//
//	converted := resample.Convert(clip, 48000)
package resample
