// ABOUTME: FLAC clip decoder
// ABOUTME: Decodes full FLAC streams to int32 samples using mewkiz/flac
package decode

import (
	"fmt"
	"io"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
	"github.com/mewkiz/flac"
)

// DecodeFLAC decodes an entire FLAC stream into a clip
func DecodeFLAC(r io.Reader, name string) (*audio.Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)

	// Left-justify samples into 24-bit range
	var shift uint
	switch bitDepth {
	case 24:
		shift = 0
	case 16:
		shift = 8
	case 8:
		shift = 16
	default:
		return nil, fmt.Errorf("unsupported flac bit depth: %d", bitDepth)
	}

	samples := make([]int32, 0, int(info.NSamples)*channels)

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame parse error: %w", err)
		}

		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("flac frame has %d subframes, expected %d",
				len(frame.Subframes), channels)
		}

		// Interleave the per-channel subframes
		blockSize := len(frame.Subframes[0].Samples)
		for i := 0; i < blockSize; i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, frame.Subframes[ch].Samples[i]<<shift)
			}
		}
	}

	return &audio.Clip{
		Name:    name,
		Samples: samples,
		Format: audio.Format{
			SampleRate: int(info.SampleRate),
			Channels:   channels,
			BitDepth:   bitDepth,
		},
	}, nil
}
