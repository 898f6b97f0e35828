// ABOUTME: Tests for audio output backends
// ABOUTME: Tests null output frame accounting and lifecycle errors
package output

import (
	"testing"
)

func TestNullOutputFrames(t *testing.T) {
	out := NewNull()

	if err := out.Open(48000, 2); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	// 960 stereo samples = 480 frames
	if err := out.Write(make([]int32, 960)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := out.Write(make([]int32, 960)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if out.Frames() != 960 {
		t.Errorf("expected 960 frames written, got %d", out.Frames())
	}
}

func TestNullOutputWriteBeforeOpen(t *testing.T) {
	out := NewNull()

	if err := out.Write(make([]int32, 100)); err == nil {
		t.Fatal("expected error writing before open, got nil")
	}
}

func TestNullOutputInvalidFormat(t *testing.T) {
	out := NewNull()

	if err := out.Open(0, 2); err == nil {
		t.Fatal("expected error for zero sample rate, got nil")
	}

	if err := out.Open(48000, 0); err == nil {
		t.Fatal("expected error for zero channels, got nil")
	}
}

func TestNullOutputClose(t *testing.T) {
	out := NewNull()

	if err := out.Open(48000, 2); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if err := out.Write(make([]int32, 100)); err == nil {
		t.Fatal("expected error writing after close, got nil")
	}
}
