package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

// Difficulties lists the presets the menu cycles through.
var Difficulties = []string{"normal", "easy", "hard", "fixed"}

// SongItem is a playable file in the menu.
type SongItem struct {
	Path   string
	Title  string
	Source string // ID of the beat source that reads it
}

// FindSongs lists the files in dir that some beat source can read, sorted by title.
func FindSongs(dir string) ([]SongItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list songs in %s: %w", dir, err)
	}

	var songs []SongItem
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		id, ok := registry.Match(e.Name())
		if !ok {
			continue
		}
		songs = append(songs, SongItem{
			Path:   filepath.Join(dir, e.Name()),
			Title:  songTitle(e.Name()),
			Source: id,
		})
	}

	sort.Slice(songs, func(i, j int) bool {
		return strings.ToLower(songs[i].Title) < strings.ToLower(songs[j].Title)
	})
	return songs, nil
}

// songTitle strips the file type: "My Song.beats.yaml" -> "My Song".
func songTitle(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, ".beats")
}

// MenuKeyMap defines the key bindings for the song menu.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Difficulty key.Binding
	Select     key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Difficulty, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Difficulty, k.Select, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "difficulty"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the song picker.
type MenuModel struct {
	items      []SongItem
	cursor     int
	difficulty int // Index into Difficulties
	width      int
	height     int
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	quitting   bool
	selected   *SongItem
}

// NewMenuModel creates a song menu. difficulty preselects a preset by name.
func NewMenuModel(songs []SongItem, difficulty string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:  songs,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, d := range Difficulties {
		if d == difficulty {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Difficulty):
		step := 1
		if s := msg.String(); s == "left" || s == "h" {
			step = len(Difficulties) - 1
		}
		m.difficulty = (m.difficulty + step) % len(Difficulties)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the song
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Render("  T I L E S  ")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	diff := fmt.Sprintf("Difficulty: < %s >", Difficulties[m.difficulty])
	b.WriteString(centerText(diff, m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No songs found. Add .wav, .mp3, .ogg or .beats.yaml files.", m.width))
		b.WriteString("\n")
	}

	// Keep the cursor visible on short terminals
	visible := max(m.height-9, 1)
	first := max(0, min(m.cursor-visible/2, len(m.items)-visible))
	for i := first; i < len(m.items) && i < first+visible; i++ {
		item := m.items[i]
		line := "  " + item.Title
		if item.Source != "audio" {
			line += " (" + item.Source + ")"
		}
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected song, or nil if none was selected.
func (m MenuModel) Selected() *SongItem {
	return m.selected
}

// Difficulty returns the chosen preset name.
func (m MenuModel) Difficulty() string {
	return Difficulties[m.difficulty]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Song       SongItem
	Difficulty string
	Config     core.RuntimeConfig
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(songs []SongItem, difficulty string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(songs, difficulty, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return MenuResult{
		Song:       *m.Selected(),
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}, nil
}
