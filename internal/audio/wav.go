package audio

import (
	"fmt"
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV writes mono samples in [-1, 1] as a 16-bit WAV file.
func WriteWAV(path string, samples []float64, sr beep.SampleRate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: cannot create %s: %w", path, err)
	}

	pos := 0
	s := beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copyMono(buf, samples[pos:])
		pos += n
		return n, true
	})

	format := beep.Format{SampleRate: sr, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("audio: cannot encode %s: %w", path, err)
	}
	return f.Close()
}

func copyMono(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		v := math.Max(-1, math.Min(1, src[i]))
		dst[i][0], dst[i][1] = v, v
	}
	return n
}

// ClickTrack renders a short decaying click at every beat time.
// The result lasts duration seconds, or until just past the last beat if duration is 0.
func ClickTrack(beats []float64, duration float64, sr beep.SampleRate) []float64 {
	const clickLen = 0.02 // seconds
	const clickFreq = 1000.0

	if duration <= 0 && len(beats) > 0 {
		duration = beats[len(beats)-1] + 0.5
	}
	out := make([]float64, int(duration*float64(sr)))

	n := int(clickLen * float64(sr))
	for _, bt := range beats {
		start := int(bt * float64(sr))
		for i := 0; i < n && start+i < len(out); i++ {
			if start+i < 0 {
				continue
			}
			t := float64(i) / float64(sr)
			env := 1 - float64(i)/float64(n)
			out[start+i] += 0.8 * env * math.Sin(2*math.Pi*clickFreq*t)
		}
	}
	return out
}
