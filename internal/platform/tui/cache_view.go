package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tiles/internal/registry"
	"github.com/vovakirdan/tui-tiles/internal/storage"
)

// Cache browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the source sidebar
	sidebarWidth       = 20  // Width of the source sidebar
	maxEntries         = 500 // Max analyses to load
)

// allSources is the filter that shows every entry.
const allSources = "all"

// CacheKeyMap defines the key bindings for the cache browser.
type CacheKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CacheKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CacheKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Quit},
	}
}

// DefaultCacheKeyMap returns default key bindings.
func DefaultCacheKeyMap() CacheKeyMap {
	return CacheKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next source"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev source"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CacheModel browses cached beat analyses, filtered by source.
type CacheModel struct {
	sources     []string // allSources followed by registered source IDs
	cursor      int
	entries     []storage.AnalysisEntry
	shown       []storage.AnalysisEntry
	table       table.Model
	help        help.Model
	keys        CacheKeyMap
	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewCacheModel creates a cache browser over entries.
func NewCacheModel(entries []storage.AnalysisEntry, width, height int) CacheModel {
	sources := []string{allSources}
	for _, info := range registry.List() {
		sources = append(sources, info.ID)
	}

	m := CacheModel{
		sources:     sources,
		entries:     entries,
		keys:        DefaultCacheKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.applyFilter()
	return m
}

// createTable creates a table sized to the window.
func (m *CacheModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Song", Width: 24},
		{Title: "Source", Width: 8},
		{Title: "BPM", Width: 6},
		{Title: "Beats", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Cached", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	fixed := 0
	for _, c := range columns[1:] {
		fixed += c.Width + 2
	}
	if w := tableWidth - fixed - 2; w > columns[0].Width {
		columns[0].Width = min(w, 48)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// applyFilter shows the entries of the selected source.
func (m *CacheModel) applyFilter() {
	src := m.sources[m.cursor]
	m.shown = m.shown[:0]
	for _, e := range m.entries {
		if src == allSources || e.Source == src {
			m.shown = append(m.shown, e)
		}
	}

	rows := make([]table.Row, len(m.shown))
	for i, e := range m.shown {
		tempo := "-"
		if e.Tempo > 0 {
			tempo = fmt.Sprintf("%.1f", e.Tempo)
		}
		rows[i] = table.Row{
			filepath.Base(e.Path),
			e.Source,
			tempo,
			fmt.Sprintf("%d", e.BeatCount),
			formatLength(e.Duration),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatLength(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Init initializes the cache browser.
func (m CacheModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the cache browser.
func (m CacheModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.sources)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.sources) - 1) % len(m.sources)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the cache browser.
func (m CacheModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("ANALYSIS CACHE - %d songs", len(m.entries))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			panel.Width(sidebarWidth).Render(m.renderSidebar()),
			"  ",
			panel.Render(m.renderTableContent()),
		))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(panel.Render(m.renderTableContent()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m CacheModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Sources\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, src := range m.sources {
		sb.WriteString("\n")
		if i == m.cursor {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + src))
		} else {
			sb.WriteString("  " + src)
		}
	}
	return sb.String()
}

func (m CacheModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.sources))
	for i, src := range m.sources {
		if i == m.cursor {
			tabs[i] = active.Render(src)
		} else {
			tabs[i] = helpStyle.Render(" " + src + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m CacheModel) renderTableContent() string {
	if len(m.shown) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing cached yet.\nPlay a song to analyze it.")
	}
	return m.table.View()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunCache runs the cache browser.
func RunCache(store *storage.Store, width, height int) error {
	entries, err := store.RecentAnalyses(maxEntries)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewCacheModel(entries, width, height),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
