package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/algodocs/internal/datasource"
	"github.com/vanderheijden86/algodocs/pkg/catalog"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/registry"
	"github.com/vanderheijden86/algodocs/pkg/watcher"
)

func TestModel_StartsOnCatalog(t *testing.T) {
	d := newTestDesk(t, "/")
	if d.m.screen != screenCatalog {
		t.Fatalf("screen = %v, want catalog", d.m.screen)
	}
	if got := d.m.DocumentTitle(); got != AppTitle {
		t.Errorf("DocumentTitle() = %q", got)
	}
	if got := d.m.CurrentContext(); got != ContextCatalog {
		t.Errorf("CurrentContext() = %q", got)
	}
	view := d.m.View()
	for _, want := range []string{"Algorithm Reference", "Heap Sort", "no minimized windows"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_OpenPageFromCatalog(t *testing.T) {
	d := newTestDesk(t, "/")
	// pages sort by title: Breadth-First Search, Heap Sort
	d.press("down", "enter")

	if d.m.screen != screenPage {
		t.Fatalf("screen = %v, want page", d.m.screen)
	}
	if got := d.m.Location().String(); got != "/docs/heap-sort?tab=overview" {
		t.Errorf("Location() = %q", got)
	}
	if got := d.m.History().Depth(); got != 1 {
		t.Errorf("Depth() = %d, want 1", got)
	}
	if got := d.m.DocumentTitle(); got != "Heap Sort (Overview)" {
		t.Errorf("DocumentTitle() = %q", got)
	}

	d.press("esc")
	if d.m.screen != screenCatalog || d.m.History().Depth() != 0 {
		t.Errorf("esc did not return to the catalog: screen %v depth %d", d.m.screen, d.m.History().Depth())
	}
}

func TestModel_FavoriteDigitOpensPage(t *testing.T) {
	d := newTestDesk(t, "/")
	d.press("1")
	if got := d.m.Location().PathOrRoot(); got != "/docs/bfs" {
		t.Errorf("favorite 1 opened %q", got)
	}

	d = newTestDesk(t, "/")
	d.press("7")
	if d.m.screen != screenCatalog {
		t.Error("unassigned favorite left the catalog")
	}
	if msg, _ := d.m.Status(); !strings.Contains(msg, "No favorite") {
		t.Errorf("Status() = %q", msg)
	}
}

func TestModel_TabChangeUpdatesTitleInSameUpdate(t *testing.T) {
	d := newTestDesk(t, "/docs/heap-sort")
	if got := d.m.DocumentTitle(); got != "Heap Sort (Overview)" {
		t.Fatalf("DocumentTitle() = %q", got)
	}

	cmd := d.send(keyMsg("tab"))
	if got := d.m.Location().Get("tab"); got != "examples" {
		t.Errorf("tab query = %q, want examples", got)
	}
	if got := d.m.DocumentTitle(); got != "Heap Sort (Examples)" {
		t.Errorf("DocumentTitle() = %q", got)
	}
	if d.m.lastTitle != "Heap Sort (Examples)" {
		t.Errorf("lastTitle = %q", d.m.lastTitle)
	}
	if cmd == nil {
		t.Error("expected a window title command")
	}
	if got := d.m.History().Depth(); got != 0 {
		t.Errorf("tab change pushed history: depth %d", got)
	}
}

func TestModel_MinimizeAndRestore(t *testing.T) {
	d := newTestDesk(t, "/")
	d.press("down", "enter", "tab")
	d.press("m")

	if d.m.screen != screenCatalog {
		t.Fatalf("minimize left screen %v", d.m.screen)
	}
	if got := d.m.History().Depth(); got != 0 {
		t.Errorf("minimize should go back: depth %d", got)
	}
	got, ok := d.reg.Get("help:/docs/heap-sort")
	if !ok {
		t.Fatalf("descriptor not stored; slot = %s", d.slot.Raw())
	}
	want := registry.WindowDescriptor{
		ID:    "help:/docs/heap-sort",
		Title: "Heap Sort",
		URL:   "/docs/heap-sort?tab=examples",
		Kind:  "help",
	}
	if got != want {
		t.Errorf("descriptor = %+v, want %+v", got, want)
	}
	if d.m.Taskbar().Len() != 1 {
		t.Errorf("taskbar len = %d", d.m.Taskbar().Len())
	}
	if !strings.Contains(d.m.Taskbar().View(100), "Heap Sort") {
		t.Error("taskbar does not show the minimized window")
	}

	d.press("o")
	if d.m.screen != screenPage {
		t.Fatalf("restore left screen %v", d.m.screen)
	}
	if got := d.m.Window().Router().Active(); got != "examples" {
		t.Errorf("restored tab = %q, want examples", got)
	}
	if got := d.m.History().Depth(); got != 1 {
		t.Errorf("restore should push: depth %d", got)
	}
	if len(d.reg.List()) != 0 {
		t.Errorf("restore kept the descriptor: %s", d.slot.Raw())
	}
}

func TestModel_MinimizeWithoutHistoryFallsBackToCatalog(t *testing.T) {
	d := newTestDesk(t, "/docs/bfs")
	d.press("m")
	if got := d.m.Location().String(); got != "/" {
		t.Errorf("Location() = %q, want /", got)
	}
	if got := d.m.History().Depth(); got != 1 {
		t.Errorf("fallback should push: depth %d", got)
	}
}

func TestModel_MinimizeWriteFailureStillCloses(t *testing.T) {
	d := newTestDesk(t, "/")
	d.slot.FailWrites = errors.New("quota exceeded")
	d.press("down", "enter", "m")

	if d.m.screen != screenCatalog {
		t.Errorf("window stayed open after a failed save")
	}
	msg, isErr := d.m.Status()
	if !isErr || !strings.Contains(msg, "not saved") {
		t.Errorf("Status() = %q, %v", msg, isErr)
	}
	if d.m.Taskbar().Len() != 0 {
		t.Errorf("taskbar shows %d windows", d.m.Taskbar().Len())
	}
}

func TestModel_TaskbarRemoveAndSelect(t *testing.T) {
	d := newTestDesk(t, "/")
	for _, path := range []string{"/docs/heap-sort", "/docs/bfs"} {
		if err := d.reg.Minimize(registry.WindowDescriptor{ID: registry.IDForPath(path), Title: path, URL: path, Kind: registry.KindHelp}); err != nil {
			t.Fatalf("Minimize: %v", err)
		}
	}
	d.send(slotChanged(d.reg, 1))
	if d.m.Taskbar().Len() != 2 {
		t.Fatalf("taskbar len = %d", d.m.Taskbar().Len())
	}

	d.press("]")
	sel, _ := d.m.Taskbar().Selected()
	if sel.ID != "help:/docs/bfs" {
		t.Errorf("selected %q", sel.ID)
	}
	d.press("x")
	list := d.reg.List()
	if len(list) != 1 || list[0].ID != "help:/docs/heap-sort" {
		t.Errorf("after remove: %+v", list)
	}
	if d.m.Taskbar().Len() != 1 {
		t.Errorf("taskbar len = %d", d.m.Taskbar().Len())
	}
}

func TestModel_RestoreStaleDescriptor(t *testing.T) {
	d := newTestDesk(t, "/")
	if err := d.reg.Minimize(registry.WindowDescriptor{ID: "help:/docs/bfs", URL: "/docs/bfs"}); err != nil {
		t.Fatal(err)
	}
	d.send(slotChanged(d.reg, 1))
	// another process restored it meanwhile
	if err := d.reg.Clear(); err != nil {
		t.Fatal(err)
	}

	d.press("o")
	if d.m.screen != screenCatalog {
		t.Errorf("stale restore navigated to %s", d.m.Location())
	}
	if _, isErr := d.m.Status(); !isErr {
		t.Error("expected an error status")
	}
	if d.m.Taskbar().Len() != 0 {
		t.Errorf("taskbar not refreshed: len %d", d.m.Taskbar().Len())
	}
}

func TestModel_SlotChangeAppliesDeliveredWindows(t *testing.T) {
	d := newTestDesk(t, "/")
	bfs := registry.WindowDescriptor{ID: "help:/docs/bfs", Title: "BFS", URL: "/docs/bfs", Kind: registry.KindHelp}

	d.send(WindowsChangedMsg{Change: watcher.Change{
		Decoded: registry.Decoded{Status: registry.Valid, Windows: []registry.WindowDescriptor{bfs}},
		Seq:     1,
	}})
	if sel, ok := d.m.Taskbar().Selected(); !ok || sel != bfs {
		t.Fatalf("taskbar selection = %+v, %v; want the delivered window", sel, ok)
	}

	d.send(WindowsChangedMsg{Change: watcher.Change{
		Decoded: registry.Decode([]byte("not json"), true),
		Seq:     2,
	}})
	if d.m.Taskbar().Len() != 0 {
		t.Errorf("corrupt slot should empty the taskbar, len %d", d.m.Taskbar().Len())
	}
}

func TestModel_UnknownPathShowsNotFound(t *testing.T) {
	d := newTestDesk(t, "/docs/nope")
	if d.m.screen != screenNotFound {
		t.Fatalf("screen = %v", d.m.screen)
	}
	if !strings.Contains(d.m.View(), "/docs/nope") {
		t.Error("not found view does not name the path")
	}
	d.press("esc")
	if !d.m.Location().IsRoot() {
		t.Errorf("esc from not found went to %s", d.m.Location())
	}
}

func TestModel_CopyLocation(t *testing.T) {
	var copied string
	m := NewModel(Options{
		Catalog:         catalog.New(heapSortPage()),
		Registry:        registry.New(datasource.NewMemorySlot()),
		Start:           location.Parse("/docs/heap-sort?tab=examples"),
		Theme:           TestTheme(),
		CopyToClipboard: func(s string) error { copied = s; return nil },
	})
	updated, _ := m.Update(keyMsg("y"))
	m = updated.(Model)
	if copied != "/docs/heap-sort?tab=examples" {
		t.Errorf("copied %q", copied)
	}

	m.copy = func(string) error { return errors.New("no display") }
	updated, _ = m.Update(keyMsg("y"))
	m = updated.(Model)
	if _, isErr := m.Status(); !isErr {
		t.Error("clipboard failure not reported")
	}
}

func TestModel_StatusClears(t *testing.T) {
	d := newTestDesk(t, "/")
	d.press("9")
	seq := d.m.statusSeq
	d.send(statusTimeoutMsg{seq: seq - 1})
	if msg, _ := d.m.Status(); msg == "" {
		t.Error("stale timeout cleared the status")
	}
	d.send(statusTimeoutMsg{seq: seq})
	if msg, _ := d.m.Status(); msg != "" {
		t.Errorf("status not cleared: %q", msg)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	d := newTestDesk(t, "/docs/heap-sort?tab=walkthrough")
	d.press("?")
	if d.m.CurrentContext() != ContextHelp {
		t.Fatalf("context = %q", d.m.CurrentContext())
	}
	if !strings.Contains(d.m.View(), "Scenario") {
		t.Error("help overlay is not context specific")
	}
	// keys do not reach the window while help is open
	d.press("n")
	if idx, _ := d.m.Window().Stepper().Position(); idx != 0 {
		t.Error("stepper moved under the help overlay")
	}
	d.press("esc")
	if d.m.CurrentContext() != ContextScenarios {
		t.Errorf("context after closing = %q", d.m.CurrentContext())
	}
}

func TestModel_Quit(t *testing.T) {
	d := newTestDesk(t, "/")
	cmd := d.send(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !yieldsMsg[tea.QuitMsg](cmd) {
		t.Error("ctrl+c did not quit")
	}
}

// yieldsMsg runs cmd, descending into batches, and reports whether any
// command produced a message of type T.
func yieldsMsg[T tea.Msg](cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case T:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if yieldsMsg[T](c) {
				return true
			}
		}
	}
	return false
}
