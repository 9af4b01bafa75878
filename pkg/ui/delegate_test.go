package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

func renderPageRow(t *testing.T, item PageItem, width int) string {
	t.Helper()
	delegate := PageDelegate{Theme: DefaultTheme(lipgloss.NewRenderer(os.Stdout))}
	l := list.New([]list.Item{item}, delegate, 0, 0)
	l.SetWidth(width)

	var buf bytes.Buffer
	delegate.Render(&buf, l, 0, item)
	return buf.String()
}

func TestPageDelegate_RenderWide(t *testing.T) {
	out := renderPageRow(t, PageItem{Page: heapSortPage(), FavoriteNum: 3}, 120)

	for _, want := range []string{"Heap Sort", "/docs/heap-sort", "3 tabs ▶", "3 "} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q: %q", want, out)
		}
	}
	if !strings.Contains(out, "In-place") {
		t.Fatalf("wide output missing summary: %q", out)
	}
}

func TestPageDelegate_RenderNarrow(t *testing.T) {
	out := renderPageRow(t, PageItem{Page: heapSortPage()}, 40)

	if !strings.Contains(out, "Heap Sort") {
		t.Fatalf("narrow output missing title: %q", out)
	}
	if strings.Contains(out, "/docs/heap-sort") {
		t.Fatalf("narrow output should hide the path: %q", out)
	}
	if strings.Contains(out, "tabs") {
		t.Fatalf("narrow output should hide the tab count: %q", out)
	}
}

func TestPageDelegate_RenderFallsBackWidth(t *testing.T) {
	out := renderPageRow(t, PageItem{Page: bfsPage()}, 0)
	if !strings.Contains(out, "Breadth-First Search") {
		t.Fatalf("render output missing title after width fallback: %q", out)
	}
	if strings.Contains(out, "▶") {
		t.Fatalf("page without scenarios shows the player marker: %q", out)
	}
}

func TestPageItem(t *testing.T) {
	item := PageItem{Page: bfsPage(), FavoriteNum: 2}
	if got := item.Title(); got != "2 Breadth-First Search" {
		t.Errorf("Title() = %q", got)
	}
	if !strings.Contains(item.FilterValue(), "/docs/bfs") {
		t.Errorf("FilterValue() = %q", item.FilterValue())
	}
}
