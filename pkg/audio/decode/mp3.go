// ABOUTME: MP3 clip decoder
// ABOUTME: Decodes full MP3 streams to int32 samples using go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an entire MP3 stream into a clip.
// go-mp3 always outputs 16-bit stereo at the source sample rate.
func DecodeMP3(r io.Reader, name string) (*audio.Clip, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	numSamples := len(pcm) / 2
	samples := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	return &audio.Clip{
		Name:    name,
		Samples: samples,
		Format: audio.Format{
			SampleRate: decoder.SampleRate(),
			Channels:   2,
			BitDepth:   16,
		},
	}, nil
}
