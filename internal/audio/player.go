package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// sampleRate is the output rate; songs are resampled to it.
const sampleRate = beep.SampleRate(44100)

// Effect tone frequencies and lengths.
const (
	hitFreq  = 880.0
	missFreq = 180.0
	hitLen   = 60 * time.Millisecond
	missLen  = 120 * time.Millisecond
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the output device once per process.
func initSpeaker(bufferMS int) error {
	speakerOnce.Do(func() {
		if bufferMS <= 0 {
			bufferMS = 100
		}
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Duration(bufferMS)*time.Millisecond))
	})
	return speakerErr
}

// Options configures a Player.
type Options struct {
	BufferMS int  // Speaker buffer length
	SFX      bool // Play hit/miss tones
}

// Player plays one song through the speaker.
type Player struct {
	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	sfx      bool
	gen      atomic.Uint64 // Bumped under the speaker lock on every (re)start and close
	playing  atomic.Bool
	duration time.Duration
}

// Open decodes the song and prepares the speaker. Playback begins with Start.
func Open(path string, opts Options) (*Player, error) {
	stream, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	if err := initSpeaker(opts.BufferMS); err != nil {
		stream.Close()
		return nil, fmt.Errorf("audio: cannot open output device: %w", err)
	}

	return &Player{
		stream:   stream,
		format:   format,
		sfx:      opts.SFX,
		duration: format.SampleRate.D(stream.Len()),
	}, nil
}

// Duration returns the song length.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Start begins playback from the beginning.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startLocked()
}

// Restart stops the current playback and starts over.
func (p *Player) Restart() {
	p.Start()
}

func (p *Player) startLocked() {
	speaker.Lock()
	if p.ctrl != nil {
		p.ctrl.Streamer = nil
	}
	if err := p.stream.Seek(0); err != nil {
		log.Warn("cannot rewind song", "err", err)
	}
	gen := p.gen.Add(1)

	var s beep.Streamer = p.stream
	if p.format.SampleRate != sampleRate {
		s = beep.Resample(4, p.format.SampleRate, sampleRate, s)
	}
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(s, beep.Callback(func() {
			p.finished(gen)
		})),
	}
	p.playing.Store(true)
	speaker.Unlock()

	speaker.Play(p.ctrl)
}

// finished runs on the speaker goroutine, with the speaker locked, when a stream drains.
// It must not take p.mu.
func (p *Player) finished(gen uint64) {
	if gen == p.gen.Load() {
		p.playing.Store(false)
	}
}

// Pause pauses or resumes playback. A paused song still counts as playing.
func (p *Player) Pause(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Playing reports whether the song has been started and has not finished.
func (p *Player) Playing() bool {
	return p.playing.Load()
}

// PlayHit plays the hit tone.
func (p *Player) PlayHit() {
	p.tone(hitFreq, hitLen)
}

// PlayMiss plays the miss tone.
func (p *Player) PlayMiss() {
	p.tone(missFreq, missLen)
}

func (p *Player) tone(freq float64, d time.Duration) {
	if !p.sfx {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Debug("cannot build tone", "freq", freq, "err", err)
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   -2,
	})
}

// Close stops playback and releases the song file.
// The speaker itself stays open for the rest of the process.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	speaker.Lock()
	if p.ctrl != nil {
		p.ctrl.Streamer = nil
	}
	p.gen.Add(1)
	p.playing.Store(false)
	speaker.Unlock()

	return p.stream.Close()
}
