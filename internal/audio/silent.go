package audio

import (
	"sync"
	"time"
)

// Silent stands in for a Player when no sound is wanted.
// It plays for a fixed duration of unpaused wall time.
type Silent struct {
	mu       sync.Mutex
	duration time.Duration
	now      func() time.Time

	started  bool
	start    time.Time
	pausedAt time.Time
	paused   bool
	stopped  bool
}

// NewSilent creates a silent track lasting d.
func NewSilent(d time.Duration) *Silent {
	return &Silent{duration: d, now: time.Now}
}

// Duration returns the track length.
func (s *Silent) Duration() time.Duration {
	return s.duration
}

// Start begins the track clock.
func (s *Silent) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.stopped = false
	s.paused = false
	s.start = s.now()
}

// Restart starts the track clock over.
func (s *Silent) Restart() {
	s.Start()
}

// Pause stops or resumes the track clock.
func (s *Silent) Pause(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || paused == s.paused {
		return
	}
	if paused {
		s.pausedAt = s.now()
	} else {
		s.start = s.start.Add(s.now().Sub(s.pausedAt))
	}
	s.paused = paused
}

// Playing reports whether the track has started and not run out.
func (s *Silent) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.stopped {
		return false
	}
	at := s.now()
	if s.paused {
		at = s.pausedAt
	}
	return at.Sub(s.start) < s.duration
}

// PlayHit does nothing.
func (s *Silent) PlayHit() {}

// PlayMiss does nothing.
func (s *Silent) PlayMiss() {}

// Close stops the track.
func (s *Silent) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}
