package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/games/tiles"
)

// Track is the song being played along with. audio.Player and audio.Silent
// satisfy it.
type Track interface {
	tiles.Track
	Start()
	Restart()
	Pause(paused bool)
	PlayHit()
	PlayMiss()
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that runs one song.
type Model struct {
	game       *tiles.Game
	track      Track
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	started    bool // Song playback has begun for this session
	fixedSeed  bool
	quitting   bool
}

// NewModel creates a model for game. The screen keeps one row for the help bar.
func NewModel(game *tiles.Game, track Track, keys KeyMap, cfg core.RuntimeConfig) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		track:      track,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:     cfg,
		keys:       keys,
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		fixedSeed:  fixed,
	}
}

// Init builds the level, starts the song and the tick loop.
func (m Model) Init() tea.Cmd {
	m.start()
	return tickCmd(m.config.TickRate)
}

// start resets the game and the song together.
func (m *Model) start() {
	if err := m.game.Reset(m.config); err != nil {
		log.Error("cannot start session", "err", err)
	}
	m.gameState = m.game.State()
	if m.gameState.GameOver {
		return
	}
	log.Info("session started", "seed", m.config.Seed, "targets", len(m.game.Level()))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey buffers presses for the next tick. Restart and quit apply at
// once when the session is over.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.gameState.GameOver {
		return m, nil
	}

	switch {
	case m.inputFrame.Has(core.ActionRestart):
		if err := m.game.Choose(tiles.ChoiceRestart); err != nil {
			log.Warn("restart ignored", "err", err)
			break
		}
		m.restart()
	case m.inputFrame.Has(core.ActionQuit):
		//nolint:errcheck // Session is terminal, the choice only gets recorded
		m.game.Choose(tiles.ChoiceQuit)
		m.quitting = true
		return m, tea.Quit
	}
	m.inputFrame.Clear()
	return m, nil
}

// restart regenerates the level and rewinds the song.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.start()
	m.lastTick = time.Time{}
	if !m.gameState.GameOver {
		m.track.Restart()
		m.started = true
	}
}

// handleResize processes window resize events. Playfield coordinates are
// independent of the terminal, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// The song must be playing before the first step, or an empty
	// playfield would count as a finished song.
	if !m.started && !m.game.State().GameOver {
		m.track.Start()
		m.started = true
	}
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	wasPaused := m.gameState.Paused
	result := m.game.Step(dt, m.inputFrame)
	m.gameState = result.State
	if m.gameState.Paused != wasPaused {
		m.track.Pause(m.gameState.Paused)
	}

	m.handleEvents(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvents plays sound effects and logs session milestones.
func (m *Model) handleEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventHit:
			m.track.PlayHit()
		case core.EventWrongTap, core.EventBoundaryMiss:
			m.track.PlayMiss()
		case core.EventMilestone:
			log.Info("milestone", "points", e.Value)
		case core.EventSessionEnd:
			m.track.Pause(true)
			log.Info("session ended",
				"reason", m.gameState.Reason,
				"score", m.gameState.Score,
				"misses", m.gameState.Misses,
			)
		}
	}
}

// State returns the latest game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var bar string
	if m.gameState.GameOver {
		bar = m.help.ShortHelpView(m.keys.EndHelp())
	} else {
		bar = m.help.View(m.keys)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(bar)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *tiles.Game, track Track, keys KeyMap, cfg core.RuntimeConfig) error {
	model := NewModel(game, track, keys, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
