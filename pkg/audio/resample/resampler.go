// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts whole clips between sample rates using linear interpolation
package resample

import (
	"github.com/Loopline-Audio/loopline-go/pkg/audio"
)

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
	}
}

// Resample converts input samples to output sample rate using linear interpolation.
// input: interleaved samples at inputRate
// output: interleaved samples at outputRate
// Returns the number of output samples produced.
func (r *Resampler) Resample(input []int32, output []int32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0

	for outIdx < outputFrames {
		inputPos := r.position
		inputIdx := int(inputPos)

		if inputIdx >= inputFrames-1 {
			break
		}

		// Linear interpolation factor
		frac := inputPos - float64(inputIdx)

		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := input[(inputIdx+1)*r.channels+ch]

			interpolated := float64(sample1)*(1.0-frac) + float64(sample2)*frac
			output[outIdx*r.channels+ch] = int32(interpolated)
		}

		outIdx++
		r.position += r.ratio
	}

	// Reset position for next chunk, keeping fractional part
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Convert resamples an entire clip to the target rate. Clips already at
// the target rate are returned unchanged.
func Convert(clip *audio.Clip, targetRate int) *audio.Clip {
	if clip.Empty() || clip.Format.SampleRate == targetRate {
		return clip
	}

	r := New(clip.Format.SampleRate, targetRate, clip.Format.Channels)
	output := make([]int32, r.OutputSamplesNeeded(len(clip.Samples)))
	n := r.Resample(clip.Samples, output)

	format := clip.Format
	format.SampleRate = targetRate

	return &audio.Clip{
		Name:    clip.Name,
		Samples: output[:n],
		Format:  format,
	}
}
