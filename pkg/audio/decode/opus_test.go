// ABOUTME: Tests for Opus packet decoder
// ABOUTME: Tests decoder parameter validation and empty packet handling
package decode

import (
	"testing"
)

func TestDecodeOpusPacketsInvalidChannels(t *testing.T) {
	clip, err := DecodeOpusPackets(nil, 48000, 0, "bad")
	if err == nil {
		t.Fatal("expected error for zero channels, got nil")
	}
	if clip != nil {
		t.Fatal("expected nil clip for invalid decoder parameters")
	}
}

func TestDecodeOpusPacketsEmpty(t *testing.T) {
	clip, err := DecodeOpusPackets([][]byte{}, 48000, 2, "silence")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(clip.Samples) != 0 {
		t.Errorf("expected no samples from no packets, got %d", len(clip.Samples))
	}
	if clip.Format.SampleRate != 48000 {
		t.Errorf("expected 48000Hz, got %d", clip.Format.SampleRate)
	}
	if clip.Format.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", clip.Format.Channels)
	}
}

func TestDecodeOpusPacketsGarbage(t *testing.T) {
	packets := [][]byte{{0xDE, 0xAD, 0xBE, 0xEF}}

	_, err := DecodeOpusPackets(packets, 48000, 2, "garbage")
	if err == nil {
		t.Fatal("expected error for garbage packet, got nil")
	}
}
