package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapLanes(t *testing.T) {
	km := NewKeyMap([]string{"d", "f", "j", "k"})

	tests := []struct {
		msg  tea.KeyMsg
		lane int
	}{
		{runeKey('d'), 0},
		{runeKey('f'), 1},
		{runeKey('j'), 2},
		{runeKey('k'), 3},
		{runeKey('x'), -1},
		{tea.KeyMsg{Type: tea.KeySpace}, -1},
	}
	for _, tc := range tests {
		if got := km.Lane(tc.msg); got != tc.lane {
			t.Errorf("Lane(%q) = %d, expected %d", tc.msg.String(), got, tc.lane)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMap([]string{"d", "f", "j", "k"})
	frame := core.NewInputFrame()

	for _, r := range "kdk" {
		if km.MapKeyToFrame(runeKey(r), &frame) {
			t.Fatalf("%c should not quit", r)
		}
	}
	want := []int{3, 0, 3}
	if len(frame.Lanes) != len(want) {
		t.Fatalf("Lanes = %v, expected %v", frame.Lanes, want)
	}
	for i := range want {
		if frame.Lanes[i] != want[i] {
			t.Errorf("Lanes = %v, expected presses in arrival order %v", frame.Lanes, want)
			break
		}
	}

	km.MapKeyToFrame(runeKey('p'), &frame)
	km.MapKeyToFrame(runeKey('r'), &frame)
	km.MapKeyToFrame(runeKey('q'), &frame)
	for _, a := range []core.Action{core.ActionPause, core.ActionRestart, core.ActionQuit} {
		if !frame.Has(a) {
			t.Errorf("Expected %s to be set", a)
		}
	}

	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEsc}, &frame) {
		t.Error("Esc should request exit")
	}
	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("Ctrl+C should request exit")
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := NewKeyMap([]string{"a", "s", "k", "l"})
	view := help.New().View(km)

	if !strings.Contains(view, "a/s/k/l") {
		t.Errorf("Help should list lane keys, got %q", view)
	}
	if !strings.Contains(view, "pause") {
		t.Errorf("Help should mention pause, got %q", view)
	}
	if len(km.FullHelp()[0]) != 4 {
		t.Errorf("Full help should list every lane")
	}
}
