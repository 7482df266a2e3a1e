package tiles

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-tiles/internal/level"
)

func testPlayfield() Playfield {
	return Playfield{Width: 800, Height: 600, TargetHeight: 100, Lanes: 4}
}

func TestTimingSpawnAtScheduledTime(t *testing.T) {
	e := NewTimingEngine([]level.Target{{Time: 0.5, Lane: 2}}, testPlayfield(), 2.0)

	spawned, _ := e.Tick(0.25, 0.25)
	if len(spawned) != 0 {
		t.Fatalf("Nothing should spawn before its time, got %d", len(spawned))
	}

	spawned, _ = e.Tick(0.5, 0)
	if len(spawned) != 1 {
		t.Fatalf("Expected 1 spawn at elapsed == time, got %d", len(spawned))
	}

	tg := spawned[0]
	if tg.Lane != 2 || tg.SpawnTime != 0.5 {
		t.Errorf("Spawned target = %+v, expected lane 2 at 0.5", tg)
	}
	if tg.Y != -100 {
		t.Errorf("Target should start one height above the field, Y = %v", tg.Y)
	}
	if tg.Speed != 300 {
		t.Errorf("Speed = %v, expected height/hitTime = 300", tg.Speed)
	}
	if e.Pending() != 0 || e.Active().Len() != 1 {
		t.Errorf("Pending = %d, Active = %d, expected 0 and 1", e.Pending(), e.Active().Len())
	}
}

func TestTimingSpawnedTargetsAdvanceSameTick(t *testing.T) {
	e := NewTimingEngine([]level.Target{{Time: 0.5, Lane: 0}}, testPlayfield(), 2.0)

	spawned, _ := e.Tick(0.5, 0.25)
	if len(spawned) != 1 {
		t.Fatalf("Expected 1 spawn, got %d", len(spawned))
	}
	if spawned[0].Y != -25 {
		t.Errorf("Y = %v, expected -100 + 300*0.25 = -25", spawned[0].Y)
	}
}

func TestTimingSpawnMonotonicity(t *testing.T) {
	schedule := []level.Target{
		{Time: 0.5, Lane: 0},
		{Time: 1.0, Lane: 1},
		{Time: 1.0, Lane: 2},
		{Time: 1.5, Lane: 3},
		{Time: 2.0, Lane: 0},
	}
	e := NewTimingEngine(schedule, testPlayfield(), 2.0)

	var order []*Target
	seen := make(map[*Target]bool)
	elapsed := 0.0
	for i := 0; i < 40; i++ {
		elapsed += 0.125
		spawned, _ := e.Tick(elapsed, 0.125)
		for _, tg := range spawned {
			if seen[tg] {
				t.Fatalf("Target %+v spawned twice", tg)
			}
			seen[tg] = true
			order = append(order, tg)
		}
	}

	if len(order) != len(schedule) {
		t.Fatalf("Spawned %d targets, expected %d", len(order), len(schedule))
	}
	for i, tg := range order {
		if tg.SpawnTime != schedule[i].Time || tg.Lane != schedule[i].Lane {
			t.Errorf("Spawn %d = (%v, lane %d), expected (%v, lane %d)",
				i, tg.SpawnTime, tg.Lane, schedule[i].Time, schedule[i].Lane)
		}
	}
}

func TestTimingSortsScheduleStably(t *testing.T) {
	schedule := []level.Target{
		{Time: 1.0, Lane: 0},
		{Time: 0.5, Lane: 1},
		{Time: 1.0, Lane: 2},
	}
	e := NewTimingEngine(schedule, testPlayfield(), 2.0)

	spawned, _ := e.Tick(5, 0)
	expected := []int{1, 0, 2}
	if len(spawned) != len(expected) {
		t.Fatalf("Expected %d spawns, got %d", len(expected), len(spawned))
	}
	for i, lane := range expected {
		if spawned[i].Lane != lane {
			t.Errorf("Spawn %d lane = %d, expected %d", i, spawned[i].Lane, lane)
		}
	}

	// The caller's slice is left alone
	if schedule[0].Lane != 0 {
		t.Error("NewTimingEngine should not reorder the caller's schedule")
	}
}

func TestTimingClampsBadDelta(t *testing.T) {
	e := NewTimingEngine([]level.Target{{Time: 0, Lane: 0}}, testPlayfield(), 2.0)
	e.Tick(0, 0)
	tg := e.Active().Items()[0]

	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		e.Tick(0.1, dt)
		if tg.Y != -100 {
			t.Errorf("dt=%v should be clamped to 0, Y = %v", dt, tg.Y)
		}
	}
}

func TestTimingBoundaryMiss(t *testing.T) {
	e := NewTimingEngine([]level.Target{{Time: 0, Lane: 0}, {Time: 0, Lane: 1}}, testPlayfield(), 2.0)
	e.Tick(0, 0)
	items := e.Active().Items()
	first, second := items[0], items[1]

	first.Y = 600
	second.Y = 600.5

	_, missed := e.Tick(0, 0)
	if len(missed) != 1 || missed[0] != second {
		t.Fatalf("Only the target past the bottom should miss, got %d", len(missed))
	}
	if !second.Resolved {
		t.Error("Missed target should be marked resolved")
	}
	if e.Active().Len() != 1 || e.Active().Items()[0] != first {
		t.Error("Target exactly at the bottom should stay active")
	}

	first.Y = 601
	_, missed = e.Tick(0, 0)
	if len(missed) != 1 || !e.Done() {
		t.Errorf("Expected final miss and Done(), missed=%d done=%v", len(missed), e.Done())
	}
}

func TestTimingSpeedFunc(t *testing.T) {
	e := NewTimingEngine([]level.Target{{Time: 0, Lane: 0}}, testPlayfield(), 2.0)
	e.SpeedFunc = func() float64 { return 2 }

	spawned, _ := e.Tick(0, 0)
	if spawned[0].Speed != 600 {
		t.Errorf("Speed = %v, expected 600 with factor 2", spawned[0].Speed)
	}
}

func TestTimingClear(t *testing.T) {
	schedule := []level.Target{{Time: 0, Lane: 0}, {Time: 10, Lane: 1}}
	e := NewTimingEngine(schedule, testPlayfield(), 2.0)
	e.Tick(0, 0)

	e.Clear()
	if e.Active().Len() != 0 {
		t.Errorf("Clear should drop active targets, got %d", e.Active().Len())
	}
	if e.Pending() != 1 || e.Done() {
		t.Errorf("Clear should keep pending targets, Pending = %d", e.Pending())
	}
}

func TestActiveSetSweep(t *testing.T) {
	var s ActiveSet
	targets := make([]*Target, 5)
	for i := range targets {
		targets[i] = &Target{Lane: i}
		s.Add(targets[i])
	}

	targets[0].Resolved = true
	targets[2].Resolved = true
	targets[4].Resolved = true
	s.Sweep()

	if s.Len() != 2 || s.Items()[0] != targets[1] || s.Items()[1] != targets[3] {
		t.Errorf("Sweep should keep unresolved targets in order, got %d items", s.Len())
	}
}
