package tiles

import (
	"errors"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
)

// ErrNotTerminal is returned when a choice is made while the session is still running.
var ErrNotTerminal = errors.New("tiles: session is not over")

// State is the session lifecycle state.
type State int

const (
	StateActive State = iota
	StateTerminal
)

// Choice is the player's answer at the end of a session.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceRestart
	ChoiceQuit
)

// Session owns score, misses and milestone bookkeeping for one play-through.
type Session struct {
	score     int
	misses    int
	maxMisses int

	milestones []int
	achieved   map[int]bool

	wrongTapCountsAsMiss bool

	state  State
	reason core.EndReason
	choice Choice
}

// NewSession creates an active session with zeroed counters.
func NewSession(cfg config.SessionConfig) *Session {
	milestones := make([]int, len(cfg.Milestones))
	copy(milestones, cfg.Milestones)

	return &Session{
		maxMisses:            cfg.MaxMisses,
		milestones:           milestones,
		achieved:             make(map[int]bool, len(milestones)),
		wrongTapCountsAsMiss: cfg.WrongTapCountsAsMiss,
	}
}

// Score returns the current score. It may be negative.
func (s *Session) Score() int { return s.score }

// Misses returns the number of boundary misses.
func (s *Session) Misses() int { return s.misses }

// MaxMisses returns the miss budget.
func (s *Session) MaxMisses() int { return s.maxMisses }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Terminal reports whether the session has ended.
func (s *Session) Terminal() bool { return s.state == StateTerminal }

// Reason returns why the session ended, ReasonNone while active.
func (s *Session) Reason() core.EndReason { return s.reason }

// Choice returns the recorded end-of-session choice.
func (s *Session) Choice() Choice { return s.choice }

// Achieved reports whether a milestone threshold has been reached.
func (s *Session) Achieved(threshold int) bool { return s.achieved[threshold] }

// Hit records a resolved target and returns the milestones reached for the first time.
func (s *Session) Hit() []int {
	if s.Terminal() {
		return nil
	}
	s.score++

	var reached []int
	for _, m := range s.milestones {
		if m <= s.score && !s.achieved[m] {
			s.achieved[m] = true
			reached = append(reached, m)
		}
	}
	return reached
}

// WrongTap records a press that found no target. It costs a point; with
// wrong_tap_counts_as_miss it also counts toward the miss budget.
// Returns true if the session just ended.
func (s *Session) WrongTap() bool {
	if s.Terminal() {
		return false
	}
	s.score--
	if !s.wrongTapCountsAsMiss {
		return false
	}
	return s.countMiss()
}

// BoundaryMiss records a target that fell through. Returns true if the session just ended.
func (s *Session) BoundaryMiss() bool {
	if s.Terminal() {
		return false
	}
	return s.countMiss()
}

func (s *Session) countMiss() bool {
	s.misses++
	if s.misses >= s.maxMisses {
		s.end(core.ReasonMaxMisses)
		return true
	}
	return false
}

// CheckCompletion ends the session once the song has stopped and nothing is left to hit.
// Returns true if the session just ended.
func (s *Session) CheckCompletion(songPlaying, activeEmpty bool) bool {
	if s.Terminal() || songPlaying || !activeEmpty {
		return false
	}
	s.end(core.ReasonCompleted)
	return true
}

// Abort ends the session without play, e.g. when no level could be built.
func (s *Session) Abort() {
	if s.Terminal() {
		return
	}
	s.end(core.ReasonAborted)
}

// Choose records the end-of-session choice.
func (s *Session) Choose(c Choice) error {
	if !s.Terminal() {
		return ErrNotTerminal
	}
	s.choice = c
	return nil
}

func (s *Session) end(reason core.EndReason) {
	s.state = StateTerminal
	s.reason = reason
}
