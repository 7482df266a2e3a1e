package tiles

import "github.com/vovakirdan/tui-tiles/internal/config"

// FeedbackKind tags a feedback item.
type FeedbackKind int

const (
	FeedbackHit FeedbackKind = iota
	FeedbackMiss
	FeedbackMilestone
)

// Feedback is a cosmetic item that decays over real time.
// Gameplay never reads it.
type Feedback interface {
	Kind() FeedbackKind
	Alive() bool
	update(dt float64)
}

// Marker is a circle drawn where a target was hit or missed.
type Marker struct {
	kind       FeedbackKind
	X, Y       float64 // Playfield coordinates
	Radius     float64
	Alpha      float64 // 0-255
	ShrinkRate float64 // Radius per second
	FadeRate   float64 // Alpha per second
}

// NewMarker creates a hit or miss marker using the configured decay rates.
func NewMarker(kind FeedbackKind, x, y float64, cfg config.FeedbackConfig) *Marker {
	return &Marker{
		kind:       kind,
		X:          x,
		Y:          y,
		Radius:     cfg.MarkerRadius,
		Alpha:      255,
		ShrinkRate: cfg.ShrinkRate,
		FadeRate:   cfg.FadeRate,
	}
}

func (m *Marker) Kind() FeedbackKind { return m.kind }

func (m *Marker) Alive() bool { return m.Radius > 0 && m.Alpha > 0 }

func (m *Marker) update(dt float64) {
	m.Radius -= m.ShrinkRate * dt
	m.Alpha -= m.FadeRate * dt
}

// Banner announces a milestone for a fixed duration.
type Banner struct {
	Threshold int
	Age       float64
	Duration  float64
}

// NewBanner creates a milestone banner.
func NewBanner(threshold int, duration float64) *Banner {
	return &Banner{Threshold: threshold, Duration: duration}
}

func (b *Banner) Kind() FeedbackKind { return FeedbackMilestone }

func (b *Banner) Alive() bool { return b.Age < b.Duration }

func (b *Banner) update(dt float64) {
	b.Age += dt
}

// FeedbackQueue holds live feedback items.
type FeedbackQueue struct {
	items []Feedback
}

// NewFeedbackQueue creates an empty queue.
func NewFeedbackQueue() *FeedbackQueue {
	return &FeedbackQueue{}
}

// Push adds an item.
func (q *FeedbackQueue) Push(f Feedback) {
	q.items = append(q.items, f)
}

// Update decays every item by dt seconds and drops the dead ones.
func (q *FeedbackQueue) Update(dt float64) {
	dt = clampDelta(dt)

	valid := q.items[:0]
	for _, f := range q.items {
		f.update(dt)
		if f.Alive() {
			valid = append(valid, f)
		}
	}
	for i := len(valid); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = valid
}

// Items returns the live items. Callers must not modify the slice.
func (q *FeedbackQueue) Items() []Feedback {
	return q.items
}

// Len returns the number of live items.
func (q *FeedbackQueue) Len() int {
	return len(q.items)
}

// Clear drops all items.
func (q *FeedbackQueue) Clear() {
	q.items = nil
}

// LatestBanner returns the most recently pushed live banner, or nil.
func (q *FeedbackQueue) LatestBanner() *Banner {
	for i := len(q.items) - 1; i >= 0; i-- {
		if b, ok := q.items[i].(*Banner); ok {
			return b
		}
	}
	return nil
}
