// Package level turns a beat timeline into a schedule of lane targets.
package level

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when there are no beats to build a level from.
	ErrEmptyInput = errors.New("no beat times")
	// ErrInvalidLanes is returned when fewer than two lanes are requested.
	ErrInvalidLanes = errors.New("need at least 2 lanes")
	// ErrInvalidStride is returned for a beat stride below 1.
	ErrInvalidStride = errors.New("beat stride must be at least 1")
)

// Target is a scheduled spawn: the time it enters the playfield and its lane.
type Target struct {
	Time float64 // Seconds from song start
	Lane int     // 0-based lane index
}

// Rand is the randomness Generate draws lanes from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Generate picks every beatStride-th beat and assigns it a lane so that no two
// consecutive targets share one. Beat order is preserved.
func Generate(beatTimes []float64, numLanes, beatStride int, rng Rand) ([]Target, error) {
	if numLanes < 2 {
		return nil, fmt.Errorf("level: %w (got %d)", ErrInvalidLanes, numLanes)
	}
	if beatStride < 1 {
		return nil, fmt.Errorf("level: %w (got %d)", ErrInvalidStride, beatStride)
	}
	if len(beatTimes) == 0 {
		return nil, fmt.Errorf("level: %w", ErrEmptyInput)
	}

	targets := make([]Target, 0, (len(beatTimes)+beatStride-1)/beatStride)
	prev := -1
	for i := 0; i < len(beatTimes); i += beatStride {
		lane := pickLane(rng, numLanes, prev)
		targets = append(targets, Target{Time: beatTimes[i], Lane: lane})
		prev = lane
	}
	return targets, nil
}

// pickLane draws uniformly from [0, numLanes) excluding prev.
// It draws over numLanes-1 slots and shifts the result past prev.
func pickLane(rng Rand, numLanes, prev int) int {
	if prev < 0 {
		return rng.Intn(numLanes)
	}
	lane := rng.Intn(numLanes - 1)
	if lane >= prev {
		lane++
	}
	return lane
}
