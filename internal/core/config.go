package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic level generation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the frame clock (default 60)
	Seed     int64 // RNG seed for level generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// EndReason tells the platform why a session reached its terminal state,
// so it can present the right end-of-session message.
type EndReason int

const (
	ReasonNone      EndReason = iota
	ReasonMaxMisses           // Too many targets fell through
	ReasonCompleted           // Song finished and the playfield is empty
	ReasonAborted             // No level could be built (no beats)
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMaxMisses:
		return "max misses"
	case ReasonCompleted:
		return "completed"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int       // Current score, may go negative
	Misses    int       // Targets that fell past the playfield
	MaxMisses int       // Miss budget before the session ends
	Elapsed   float64   // Simulated seconds since the session started
	GameOver  bool      // Whether the session is terminal
	Paused    bool      // Whether the session is paused
	Reason    EndReason // Why the session ended (ReasonNone while active)
}

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventHit          EventKind = iota // A lane press resolved a target
	EventWrongTap                      // A lane press found nothing in the window
	EventBoundaryMiss                  // A target fell past the playfield
	EventMilestone                     // A score threshold was reached for the first time
	EventSessionEnd                    // The session became terminal this step
)

// Event is a gameplay occurrence reported to the platform (sound effects, logs).
type Event struct {
	Kind  EventKind
	Lane  int // Lane involved, -1 when not applicable
	Value int // Milestone threshold for EventMilestone
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// BeatAnalysis is what a beat source yields for a song: a tempo estimate
// and the ordered beat timestamps in seconds from song start.
type BeatAnalysis struct {
	Tempo    float64   `yaml:"tempo"`    // Estimated BPM, 0 if unknown
	Duration float64   `yaml:"duration"` // Song length in seconds, 0 if unknown
	Beats    []float64 `yaml:"beats"`    // Non-decreasing, non-negative
}
