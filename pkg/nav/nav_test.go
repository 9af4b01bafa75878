package nav

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/algodocs/internal/datasource"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/registry"
	"github.com/vanderheijden86/algodocs/pkg/testutil"
)

func TestHistory(t *testing.T) {
	h := NewHistory(location.New("/"))
	if h.Depth() != 0 {
		t.Fatalf("Depth() = %d", h.Depth())
	}
	h.Back()
	if h.Depth() != 0 || h.Current().Path != "/" {
		t.Error("Back at depth 0 should be a no-op")
	}

	h.Navigate(location.New("/docs/heap-sort"))
	h.Replace(location.Parse("/docs/heap-sort?tab=examples"))
	if h.Depth() != 1 {
		t.Errorf("Replace changed depth to %d", h.Depth())
	}
	if got := h.Current().String(); got != "/docs/heap-sort?tab=examples" {
		t.Errorf("Current() = %s", got)
	}

	h.Back()
	if got := h.Current().String(); got != "/" {
		t.Errorf("after Back, Current() = %s", got)
	}
	if len(h.Entries()) != 1 {
		t.Errorf("Entries() = %v", h.Entries())
	}
}

func newBridge(t *testing.T, h *History) (*Bridge, *registry.Registry, *datasource.MemorySlot) {
	t.Helper()
	slot := datasource.NewMemorySlot()
	reg := registry.New(slot)
	return NewBridge(reg, h, location.Location{}, nil), reg, slot
}

func TestMinimizeAndCloseGoesBack(t *testing.T) {
	h := NewHistory(location.New("/"))
	h.Navigate(location.Parse("/docs/heap-sort?tab=examples"))
	b, reg, _ := newBridge(t, h)

	if err := b.MinimizeAndClose("/docs/heap-sort", "Heap Sort", h.Current().String()); err != nil {
		t.Fatal(err)
	}

	want := registry.WindowDescriptor{
		ID:    "help:/docs/heap-sort",
		Title: "Heap Sort",
		URL:   "/docs/heap-sort?tab=examples",
		Kind:  "help",
	}
	testutil.AssertWindowsEqual(t, reg.List(), []registry.WindowDescriptor{want})
	if h.Depth() != 0 || h.Current().String() != "/" {
		t.Errorf("expected Back to /, at %s depth %d", h.Current(), h.Depth())
	}
}

func TestMinimizeAndCloseFallsBackToRoot(t *testing.T) {
	h := NewHistory(location.New("/docs/bfs"))
	b, reg, _ := newBridge(t, h)

	_ = b.MinimizeAndClose("/docs/bfs", "BFS", "/docs/bfs")

	if h.Current().String() != "/" {
		t.Errorf("Current() = %s, want /", h.Current())
	}
	if h.Depth() != 1 {
		t.Errorf("fallback should push, depth = %d", h.Depth())
	}
	testutil.AssertWindowOrder(t, reg.List(), "help:/docs/bfs")
}

func TestMinimizeAndCloseCustomFallback(t *testing.T) {
	h := NewHistory(location.New("/docs/bfs"))
	b := NewBridge(registry.New(datasource.NewMemorySlot()), h, location.New("/docs"), nil)
	_ = b.MinimizeAndClose("/docs/bfs", "BFS", "/docs/bfs")
	if h.Current().Path != "/docs" {
		t.Errorf("Current() = %s, want /docs", h.Current())
	}
}

func TestMinimizeAndCloseNavigatesDespiteWriteFailure(t *testing.T) {
	h := NewHistory(location.New("/"))
	h.Navigate(location.New("/docs/bfs"))
	slot := datasource.NewMemorySlot()
	slot.FailWrites = errors.New("disk full")
	b := NewBridge(registry.New(slot), h, location.Location{}, nil)

	err := b.MinimizeAndClose("/docs/bfs", "BFS", "/docs/bfs")
	if !errors.Is(err, registry.ErrStorageWrite) {
		t.Errorf("err = %v, want ErrStorageWrite", err)
	}
	if h.Current().String() != "/" {
		t.Errorf("window did not close, at %s", h.Current())
	}
}

func TestRestore(t *testing.T) {
	h := NewHistory(location.New("/"))
	b, reg, _ := newBridge(t, h)
	h.Navigate(location.New("/docs/dijkstra"))
	_ = b.MinimizeAndClose("/docs/dijkstra", "Dijkstra", "/docs/dijkstra?tab=scenarios")

	loc, ok := b.Restore("help:/docs/dijkstra")
	if !ok {
		t.Fatal("Restore reported unknown id")
	}
	if loc.Get("tab") != "scenarios" || h.Current().String() != "/docs/dijkstra?tab=scenarios" {
		t.Errorf("restored to %s", h.Current())
	}
	testutil.AssertWindowCount(t, reg.List(), 0)

	if _, ok := b.Restore("help:/nope"); ok {
		t.Error("Restore of unknown id should report false")
	}
}
