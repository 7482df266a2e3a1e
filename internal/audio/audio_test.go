package audio

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestWriteAndReadMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	sr := beep.SampleRate(8000)

	samples := make([]float64, 8000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sr))
	}
	if err := WriteWAV(path, samples, sr); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}

	got, rate, err := ReadMono(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadMono failed: %v", err)
	}
	if rate != sr {
		t.Errorf("Sample rate = %v, expected %v", rate, sr)
	}
	if len(got) != len(samples) {
		t.Fatalf("Read %d samples, expected %d", len(got), len(samples))
	}
	for i := 0; i < len(samples); i += 97 {
		if math.Abs(got[i]-samples[i]) > 1e-3 {
			t.Fatalf("Sample %d = %v, expected about %v", i, got[i], samples[i])
		}
	}
}

func TestDecodeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.flac")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, _, err := Decode(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Decode(.flac) = %v, expected ErrUnsupported", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, _, err := Decode(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadMonoCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	if err := WriteWAV(path, make([]float64, 100), 8000); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ReadMono(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadMono with cancelled context = %v, expected context.Canceled", err)
	}
}

func TestClickTrack(t *testing.T) {
	sr := beep.SampleRate(1000)
	out := ClickTrack([]float64{0.1, 0.5}, 1.0, sr)

	if len(out) != 1000 {
		t.Fatalf("Length = %d, expected 1000", len(out))
	}
	if out[50] != 0 {
		t.Error("Expected silence between clicks")
	}
	// Energy right after each beat
	for _, start := range []int{100, 500} {
		var e float64
		for i := start; i < start+20; i++ {
			e += out[i] * out[i]
		}
		if e == 0 {
			t.Errorf("Expected a click at sample %d", start)
		}
	}

	if got := ClickTrack([]float64{1.0}, 0, sr); len(got) != 1500 {
		t.Errorf("Zero duration should extend past the last beat, got %d samples", len(got))
	}
}

func TestSilentTrack(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewSilent(10 * time.Second)
	s.now = func() time.Time { return now }

	if s.Playing() {
		t.Error("Silent track should not play before Start")
	}

	s.Start()
	now = now.Add(4 * time.Second)
	if !s.Playing() {
		t.Error("Track should play within its duration")
	}

	s.Pause(true)
	now = now.Add(100 * time.Second)
	if !s.Playing() {
		t.Error("Paused track should still count as playing")
	}
	s.Pause(false)

	now = now.Add(5 * time.Second)
	if !s.Playing() {
		t.Error("Paused time should not count toward the duration")
	}
	now = now.Add(2 * time.Second)
	if s.Playing() {
		t.Error("Track should stop after its duration")
	}

	s.Restart()
	if !s.Playing() {
		t.Error("Restart should play again")
	}
	s.Close()
	if s.Playing() {
		t.Error("Closed track should not play")
	}
}
