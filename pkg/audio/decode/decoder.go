// ABOUTME: Clip loader entry point
// ABOUTME: Dispatches file loading to the codec decoder for the file extension
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Loopline-Audio/loopline-go/pkg/audio"
)

// Load reads an audio file and decodes it into a clip. The codec is
// chosen from the file extension.
func Load(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	name := clipName(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return DecodeWAV(f, name)
	case ".mp3":
		return DecodeMP3(f, name)
	case ".flac":
		return DecodeFLAC(f, name)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}

// clipName derives a clip name from a file path
func clipName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
