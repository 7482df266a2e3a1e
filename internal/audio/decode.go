// Package audio decodes songs, plays them back with short hit/miss effects,
// and reports when a song has finished.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupported is returned for files with an unknown audio extension.
var ErrUnsupported = errors.New("audio: unsupported format")

// Extensions lists the file suffixes Decode understands.
var Extensions = []string{".wav", ".mp3", ".ogg"}

// Decode opens an audio file and picks a decoder by extension.
// The returned streamer owns the file; close it when done.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".ogg":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".ogg":
		s, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("audio: cannot decode %s: %w", filepath.Base(path), err)
	}
	return s, format, nil
}

// ReadMono decodes a whole file into mono samples in [-1, 1].
// Stereo frames are averaged. ctx is checked between chunks.
func ReadMono(ctx context.Context, path string) ([]float64, beep.SampleRate, error) {
	s, format, err := Decode(path)
	if err != nil {
		return nil, 0, err
	}
	defer s.Close()

	samples := make([]float64, 0, max(s.Len(), 0))
	buf := make([][2]float64, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			samples = append(samples, (frame[0]+frame[1])/2)
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("audio: cannot read %s: %w", filepath.Base(path), err)
	}
	return samples, format.SampleRate, nil
}
