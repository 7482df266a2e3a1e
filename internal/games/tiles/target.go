package tiles

import "math"

// Playfield is the logical area targets travel through, in abstract units.
// Y grows downward; a target is fully visible once Y >= 0.
type Playfield struct {
	Width        float64
	Height       float64
	TargetHeight float64
	Lanes        int
}

// LaneWidth returns the width of one lane.
func (p Playfield) LaneWidth() float64 {
	if p.Lanes <= 0 {
		return p.Width
	}
	return p.Width / float64(p.Lanes)
}

// LaneCenter returns the horizontal center of a lane.
func (p Playfield) LaneCenter(lane int) float64 {
	w := p.LaneWidth()
	return float64(lane)*w + w/2
}

// Target is a spawned tile falling down its lane.
type Target struct {
	Lane      int
	SpawnTime float64 // Scheduled time it entered the playfield
	Y         float64 // Top edge
	Speed     float64 // Units per second
	Height    float64
	Resolved  bool // Hit or fallen through; awaiting removal
}

// newTarget creates a target just above the playfield.
func newTarget(lane int, spawnTime, speed, height float64) *Target {
	return &Target{
		Lane:      lane,
		SpawnTime: spawnTime,
		Y:         -height,
		Speed:     speed,
		Height:    height,
	}
}

// Advance moves the target down by speed*dt.
func (t *Target) Advance(dt float64) {
	t.Y += t.Speed * dt
}

// Center returns the midpoint of the target for feedback placement.
func (t *Target) Center(laneWidth float64) (x, y float64) {
	return float64(t.Lane)*laneWidth + laneWidth/2, t.Y + t.Height/2
}

// ActiveSet holds spawned targets in insertion order.
type ActiveSet struct {
	items []*Target
}

// Add appends a target.
func (s *ActiveSet) Add(t *Target) {
	s.items = append(s.items, t)
}

// Len returns the number of active targets.
func (s *ActiveSet) Len() int {
	return len(s.items)
}

// Items returns the active targets, oldest first. Callers must not modify the slice.
func (s *ActiveSet) Items() []*Target {
	return s.items
}

// Sweep removes every resolved target in one pass, keeping order.
func (s *ActiveSet) Sweep() {
	valid := s.items[:0]
	for _, t := range s.items {
		if !t.Resolved {
			valid = append(valid, t)
		}
	}
	// Drop references held past the new length.
	for i := len(valid); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = valid
}

// Clear drops all targets.
func (s *ActiveSet) Clear() {
	for i := range s.items {
		s.items[i] = nil
	}
	s.items = s.items[:0]
}

// removeAt deletes the target at index i, keeping order.
func (s *ActiveSet) removeAt(i int) {
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

// clampDelta turns clock anomalies into a zero step.
func clampDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0
	}
	return dt
}
