// ABOUTME: Opus clip decoder
// ABOUTME: Decodes sequences of raw Opus packets to int32 samples
package decode

import (
	"fmt"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// maxOpusFrameSize is the largest possible Opus frame (120ms at 48kHz)
const maxOpusFrameSize = 5760

// DecodeOpusPackets decodes a sequence of raw Opus packets into a clip.
// Opus always decodes to 16-bit PCM at the negotiated rate.
func DecodeOpusPackets(packets [][]byte, sampleRate, channels int, name string) (*audio.Clip, error) {
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	samples := make([]int32, 0, len(packets)*960*channels)
	pcm16 := make([]int16, maxOpusFrameSize*channels)

	for i, packet := range packets {
		n, err := dec.Decode(packet, pcm16)
		if err != nil {
			return nil, fmt.Errorf("opus decode failed on packet %d: %w", i, err)
		}

		for j := 0; j < n*channels; j++ {
			samples = append(samples, audio.SampleFromInt16(pcm16[j]))
		}
	}

	return &audio.Clip{
		Name:    name,
		Samples: samples,
		Format: audio.Format{
			SampleRate: sampleRate,
			Channels:   channels,
			BitDepth:   16,
		},
	}, nil
}
