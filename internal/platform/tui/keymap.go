package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// KeyMap holds the game's key bindings. Lane bindings come from the config.
type KeyMap struct {
	Lanes   []key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
	Exit    key.Binding // Always quits, even mid-song
}

// NewKeyMap binds one key per lane, in lane order.
func NewKeyMap(laneKeys []string) KeyMap {
	lanes := make([]key.Binding, len(laneKeys))
	for i, k := range laneKeys {
		lanes[i] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, "lane "+string(rune('1'+i))),
		)
	}

	return KeyMap{
		Lanes: lanes,
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "exit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.lanesHelp(), k.Pause, k.Exit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Lanes,
		{k.Pause, k.Restart, k.Quit, k.Exit},
	}
}

// EndHelp returns the bindings offered once the session is over.
func (k KeyMap) EndHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Quit}
}

// lanesHelp folds all lane keys into a single help entry.
func (k KeyMap) lanesHelp() key.Binding {
	keys := make([]string, len(k.Lanes))
	for i, b := range k.Lanes {
		keys[i] = b.Help().Key
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), "tap lane"),
	)
}

// Lane returns the lane bound to msg, or -1.
func (k KeyMap) Lane(msg tea.KeyMsg) int {
	for i, b := range k.Lanes {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}

// MapKeyToFrame adds the press or action for msg to frame.
// Returns true if msg is an exit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.Exit):
		return true
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
	default:
		if lane := k.Lane(msg); lane >= 0 {
			frame.Press(lane)
		}
	}
	return false
}
