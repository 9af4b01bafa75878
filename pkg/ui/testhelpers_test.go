package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/algodocs/internal/datasource"
	"github.com/vanderheijden86/algodocs/pkg/catalog"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/registry"
	"github.com/vanderheijden86/algodocs/pkg/scenario"
	"github.com/vanderheijden86/algodocs/pkg/watcher"
)

// slotChanged builds the message the watcher sends after reading the slot.
func slotChanged(reg *registry.Registry, seq uint64) WindowsChangedMsg {
	return WindowsChangedMsg{Change: watcher.Change{Decoded: reg.Load(), Seq: seq}}
}

func heapSortPage() catalog.Page {
	return catalog.Page{
		Path:       "/docs/heap-sort",
		Title:      "Heap Sort",
		Summary:    "In-place O(n log n) sort",
		DefaultTab: "overview",
		Tabs: []catalog.Section{
			{ID: "overview", Label: "Overview", Kind: catalog.KindProse, Body: "Heap sort builds a max-heap."},
			{ID: "examples", Label: "Examples", Kind: catalog.KindProse, Body: "`[4, 10, 3]`"},
			{ID: "walkthrough", Label: "Walkthrough", Kind: catalog.KindScenarios},
		},
		Scenarios: []scenario.Scenario{
			{ID: "build", Title: "Build the heap", Steps: []string{"start", "sift", "done"}},
			{ID: "empty", Title: "Empty input"},
		},
	}
}

func bfsPage() catalog.Page {
	return catalog.Page{
		Path:       "/docs/bfs",
		Title:      "Breadth-First Search",
		DefaultTab: "overview",
		Tabs: []catalog.Section{
			{ID: "overview", Label: "Overview", Kind: catalog.KindProse, Body: "Level by level."},
		},
	}
}

type testDesk struct {
	m    Model
	slot *datasource.MemorySlot
	reg  *registry.Registry
}

func newTestDesk(t *testing.T, start string) *testDesk {
	t.Helper()
	slot := datasource.NewMemorySlot()
	reg := registry.New(slot)
	m := NewModel(Options{
		Catalog:         catalog.New(heapSortPage(), bfsPage()),
		Registry:        reg,
		Start:           location.Parse(start),
		Theme:           TestTheme(),
		Favorites:       map[int]string{1: "/docs/bfs"},
		CopyToClipboard: func(string) error { return nil },
	})
	d := &testDesk{m: m, slot: slot, reg: reg}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return d
}

func (d *testDesk) send(msg tea.Msg) tea.Cmd {
	updated, cmd := d.m.Update(msg)
	d.m = updated.(Model)
	return cmd
}

func (d *testDesk) press(keys ...string) {
	for _, k := range keys {
		d.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
