package tiles

import (
	"sort"

	"github.com/vovakirdan/tui-tiles/internal/level"
)

// TimingEngine spawns scheduled targets, advances them and reports the ones
// that fall past the bottom of the playfield.
type TimingEngine struct {
	schedule []level.Target
	next     int // Index of the first target not yet spawned
	active   ActiveSet
	geom     Playfield
	hitTime  float64

	// SpeedFunc, when set, scales the speed of newly spawned targets.
	SpeedFunc func() float64
}

// NewTimingEngine creates an engine for the given schedule.
// hitTime is how many seconds a target takes to cross the playfield height.
func NewTimingEngine(schedule []level.Target, geom Playfield, hitTime float64) *TimingEngine {
	sorted := make([]level.Target, len(schedule))
	copy(sorted, schedule)
	// Stable so equal times keep generation order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	return &TimingEngine{
		schedule: sorted,
		geom:     geom,
		hitTime:  hitTime,
	}
}

// BaseSpeed returns the unscaled target speed in units per second.
func (e *TimingEngine) BaseSpeed() float64 {
	if e.hitTime <= 0 {
		return 0
	}
	return e.geom.Height / e.hitTime
}

// Tick runs one simulation step at the given song time.
// Targets due by elapsed are spawned first, then every active target moves by
// dt seconds. Targets below the playfield are removed and returned as missed.
func (e *TimingEngine) Tick(elapsed, dt float64) (spawned, missed []*Target) {
	dt = clampDelta(dt)

	for e.next < len(e.schedule) && e.schedule[e.next].Time <= elapsed {
		st := e.schedule[e.next]
		e.next++

		t := newTarget(st.Lane, st.Time, e.spawnSpeed(), e.geom.TargetHeight)
		e.active.Add(t)
		spawned = append(spawned, t)
	}

	for _, t := range e.active.items {
		t.Advance(dt)
		if t.Y > e.geom.Height {
			t.Resolved = true
			missed = append(missed, t)
		}
	}

	if len(missed) > 0 {
		e.active.Sweep()
	}
	return spawned, missed
}

func (e *TimingEngine) spawnSpeed() float64 {
	speed := e.BaseSpeed()
	if e.SpeedFunc != nil {
		speed *= e.SpeedFunc()
	}
	return speed
}

// Active returns the active target set.
func (e *TimingEngine) Active() *ActiveSet {
	return &e.active
}

// Pending returns how many scheduled targets have not spawned yet.
func (e *TimingEngine) Pending() int {
	return len(e.schedule) - e.next
}

// Done reports whether every target has spawned and left the playfield.
func (e *TimingEngine) Done() bool {
	return e.Pending() == 0 && e.active.Len() == 0
}

// Clear removes all active targets. Pending ones stay pending.
func (e *TimingEngine) Clear() {
	e.active.Clear()
}
