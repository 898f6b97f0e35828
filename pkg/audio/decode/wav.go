// ABOUTME: WAV clip decoder
// ABOUTME: Parses RIFF/WAVE containers with 16-bit and 24-bit PCM data
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
)

const wavFormatPCM = 1

// DecodeWAV decodes a RIFF/WAVE stream into a clip
func DecodeWAV(r io.Reader, name string) (*audio.Clip, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}

	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var format audio.Format
	haveFmt := false

	// Walk chunks until the data chunk
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("no data chunk in WAV stream")
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}

		chunkID := string(header[0:4])
		chunkSize := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			fmtData := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, fmtData); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			if len(fmtData) < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", len(fmtData))
			}

			audioFormat := binary.LittleEndian.Uint16(fmtData[0:2])
			if audioFormat != wavFormatPCM {
				return nil, fmt.Errorf("unsupported WAV encoding: %d (PCM only)", audioFormat)
			}

			format = audio.Format{
				Channels:   int(binary.LittleEndian.Uint16(fmtData[2:4])),
				SampleRate: int(binary.LittleEndian.Uint32(fmtData[4:8])),
				BitDepth:   int(binary.LittleEndian.Uint16(fmtData[14:16])),
			}

			if format.BitDepth != 16 && format.BitDepth != 24 {
				return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
			}
			if format.Channels < 1 {
				return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}

			data := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}

			samples, err := pcmToSamples(data, format.BitDepth)
			if err != nil {
				return nil, err
			}

			return &audio.Clip{
				Name:    name,
				Samples: samples,
				Format:  format,
			}, nil

		default:
			// Skip unknown chunks (LIST, fact, etc.)
			if _, err := io.CopyN(io.Discard, r, int64(chunkSize)); err != nil {
				return nil, fmt.Errorf("failed to skip %s chunk: %w", chunkID, err)
			}
		}
	}
}

// pcmToSamples converts raw little-endian PCM bytes to int32 samples in 24-bit range
func pcmToSamples(data []byte, bitDepth int) ([]int32, error) {
	switch bitDepth {
	case 24:
		numSamples := len(data) / 3
		samples := make([]int32, numSamples)
		for i := 0; i < numSamples; i++ {
			b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
			samples[i] = audio.SampleFrom24Bit(b)
		}
		return samples, nil
	case 16:
		numSamples := len(data) / 2
		samples := make([]int32, numSamples)
		for i := 0; i < numSamples; i++ {
			sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
			samples[i] = audio.SampleFromInt16(sample16)
		}
		return samples, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", bitDepth)
	}
}
