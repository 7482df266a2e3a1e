// Package beats extracts beat timelines from songs and beatmap files.
// Sources register with the registry in init(), keyed by file extension.
package beats

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
)

// ErrNoBeats is returned when a song yields no usable beats.
var ErrNoBeats = errors.New("beats: no beats found")

// preferredBPM centers the tempo prior.
const preferredBPM = 120.0

// Tracker finds beats in mono audio.
// It builds an onset envelope from frame log-energy, estimates the beat period
// by weighted autocorrelation, then places beats by dynamic programming.
type Tracker struct {
	cfg config.AnalysisConfig
}

// NewTracker creates a tracker with the given analysis settings.
func NewTracker(cfg config.AnalysisConfig) *Tracker {
	return &Tracker{cfg: cfg}
}

// Analyze returns the tempo and beat times of samples recorded at sampleRate Hz.
func (t *Tracker) Analyze(ctx context.Context, samples []float64, sampleRate float64) (core.BeatAnalysis, error) {
	if sampleRate <= 0 || t.cfg.HopSize <= 0 || t.cfg.FrameSize < t.cfg.HopSize {
		return core.BeatAnalysis{}, errors.New("beats: invalid analysis settings")
	}
	duration := float64(len(samples)) / sampleRate

	env, err := t.onsetEnvelope(ctx, samples)
	if err != nil {
		return core.BeatAnalysis{}, err
	}
	if !normalize(env) {
		return core.BeatAnalysis{}, ErrNoBeats
	}

	frameRate := sampleRate / float64(t.cfg.HopSize)
	period, ok := t.estimatePeriod(env, frameRate)
	if !ok {
		return core.BeatAnalysis{}, ErrNoBeats
	}

	frames, err := t.track(ctx, env, period)
	if err != nil {
		return core.BeatAnalysis{}, err
	}
	frames = trim(env, frames)
	if len(frames) == 0 {
		return core.BeatAnalysis{}, ErrNoBeats
	}

	// The first frame to contain an onset starts between frameSize-hop and
	// frameSize samples before it.
	offset := float64(t.cfg.FrameSize) - float64(t.cfg.HopSize)/2
	beats := make([]float64, len(frames))
	for i, f := range frames {
		beats[i] = math.Min((float64(f*t.cfg.HopSize)+offset)/sampleRate, duration)
	}

	return core.BeatAnalysis{
		Tempo:    60 * frameRate / period,
		Duration: duration,
		Beats:    beats,
	}, nil
}

// onsetEnvelope returns the half-wave rectified frame-to-frame rise in log energy.
func (t *Tracker) onsetEnvelope(ctx context.Context, samples []float64) ([]float64, error) {
	size, hop := t.cfg.FrameSize, t.cfg.HopSize
	if len(samples) < size {
		return nil, ErrNoBeats
	}

	n := (len(samples)-size)/hop + 1
	env := make([]float64, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var e float64
		for _, s := range samples[i*hop : i*hop+size] {
			e += s * s
		}
		logE := math.Log(1e-10 + e/float64(size))
		if i > 0 {
			env[i] = math.Max(0, logE-prev)
		}
		prev = logE
	}
	return env, nil
}

// normalize scales env to unit standard deviation.
// Returns false when the envelope is flat, i.e. there are no onsets.
func normalize(env []float64) bool {
	var mean float64
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))

	var variance float64
	for _, v := range env {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(env)))
	if std < 1e-9 {
		return false
	}
	for i := range env {
		env[i] /= std
	}
	return true
}

// estimatePeriod returns the beat period in frames.
// Autocorrelation of a smoothed envelope is weighted by a log-normal prior
// around preferredBPM and limited to [MinBPM, MaxBPM].
func (t *Tracker) estimatePeriod(env []float64, frameRate float64) (float64, bool) {
	smooth := gaussianSmooth(env, 1.5)

	minLag := int(math.Floor(60 * frameRate / t.cfg.MaxBPM))
	maxLag := int(math.Ceil(60 * frameRate / t.cfg.MinBPM))
	minLag = max(minLag, 1)
	maxLag = min(maxLag, len(smooth)-1)
	if minLag >= maxLag {
		return 0, false
	}

	weighted := make([]float64, maxLag+2)
	best, bestLag := 0.0, -1
	for lag := minLag; lag <= maxLag; lag++ {
		var ac float64
		for i := lag; i < len(smooth); i++ {
			ac += smooth[i] * smooth[i-lag]
		}
		ac /= float64(len(smooth) - lag)

		bpm := 60 * frameRate / float64(lag)
		octaves := math.Log2(bpm / preferredBPM)
		weighted[lag] = ac * math.Exp(-0.5*octaves*octaves)

		if weighted[lag] > best {
			best, bestLag = weighted[lag], lag
		}
	}
	if bestLag < 0 {
		return 0, false
	}

	// Parabolic refinement between neighbouring lags
	period := float64(bestLag)
	if bestLag > minLag && bestLag < maxLag {
		a, b, c := weighted[bestLag-1], weighted[bestLag], weighted[bestLag+1]
		if den := a - 2*b + c; den != 0 {
			period += math.Max(-0.5, math.Min(0.5, 0.5*(a-c)/den))
		}
	}
	return period, true
}

// track places beats by dynamic programming: each frame's score is its onset
// strength plus the best predecessor score, penalized by how far the gap
// strays from period on a log scale.
func (t *Tracker) track(ctx context.Context, env []float64, period float64) ([]int, error) {
	n := len(env)
	score := make([]float64, n)
	back := make([]int, n)

	lo := int(math.Round(period / 2))
	hi := int(math.Round(2 * period))
	lo = max(lo, 1)

	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		back[i] = -1
		bestPrev := 0.0
		found := false
		for gap := lo; gap <= hi && gap <= i; gap++ {
			d := math.Log(float64(gap) / period)
			cand := score[i-gap] - t.cfg.Tightness*d*d
			if !found || cand > bestPrev {
				bestPrev, back[i], found = cand, i-gap, true
			}
		}
		score[i] = env[i]
		if found && bestPrev > 0 {
			score[i] += bestPrev
		} else {
			back[i] = -1
		}
	}

	end := lastStrongPeak(score)
	if end < 0 {
		return nil, nil
	}

	var frames []int
	for i := end; i >= 0; i = back[i] {
		frames = append(frames, i)
	}
	sort.Ints(frames)
	return frames, nil
}

// lastStrongPeak returns the last local maximum of score that reaches half the
// median of all local maxima.
func lastStrongPeak(score []float64) int {
	var peaks []int
	for i := range score {
		left := i == 0 || score[i] >= score[i-1]
		right := i == len(score)-1 || score[i] > score[i+1]
		if left && right && score[i] > 0 {
			peaks = append(peaks, i)
		}
	}
	if len(peaks) == 0 {
		return -1
	}

	vals := make([]float64, len(peaks))
	for i, p := range peaks {
		vals[i] = score[p]
	}
	sort.Float64s(vals)
	threshold := 0.5 * vals[len(vals)/2]

	for i := len(peaks) - 1; i >= 0; i-- {
		if score[peaks[i]] >= threshold {
			return peaks[i]
		}
	}
	return peaks[len(peaks)-1]
}

// trim drops beats at either end that sit in near-silence.
func trim(env []float64, frames []int) []int {
	var sq float64
	for _, v := range env {
		sq += v * v
	}
	threshold := 0.5 * math.Sqrt(sq/float64(len(env)))

	strength := func(f int) float64 {
		m := 0.0
		for i := max(f-2, 0); i <= min(f+2, len(env)-1); i++ {
			m = math.Max(m, env[i])
		}
		return m
	}

	start, end := 0, len(frames)
	for start < end && strength(frames[start]) < threshold {
		start++
	}
	for end > start && strength(frames[end-1]) < threshold {
		end--
	}
	return frames[start:end]
}

// gaussianSmooth convolves x with a gaussian of the given sigma in samples.
func gaussianSmooth(x []float64, sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * d * d / (sigma * sigma))
		sum += kernel[i]
	}

	out := make([]float64, len(x))
	for i := range x {
		var acc float64
		for k, w := range kernel {
			j := i + k - radius
			if j >= 0 && j < len(x) {
				acc += w * x[j]
			}
		}
		out[i] = acc / sum
	}
	return out
}
