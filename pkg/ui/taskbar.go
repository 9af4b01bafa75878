package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/algodocs/pkg/registry"
)

// maxTaskbarLabel caps a single taskbar button, in cells.
const maxTaskbarLabel = 24

// Taskbar shows the minimized windows in registry order with one selected.
type Taskbar struct {
	windows  []registry.WindowDescriptor
	selected int
	theme    Theme
}

// NewTaskbar returns an empty taskbar.
func NewTaskbar(theme Theme) Taskbar {
	return Taskbar{theme: theme}
}

// SetWindows replaces the list, keeping the selection on the same id when
// it is still present.
func (t *Taskbar) SetWindows(windows []registry.WindowDescriptor) {
	var keep string
	if w, ok := t.Selected(); ok {
		keep = w.ID
	}
	t.windows = windows
	t.selected = 0
	for i, w := range windows {
		if w.ID == keep {
			t.selected = i
			break
		}
	}
	if t.selected >= len(windows) && len(windows) > 0 {
		t.selected = len(windows) - 1
	}
}

// Move shifts the selection by delta, clamped to the list.
func (t *Taskbar) Move(delta int) {
	if len(t.windows) == 0 {
		return
	}
	t.selected += delta
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.windows) {
		t.selected = len(t.windows) - 1
	}
}

// Selected returns the selected window.
func (t Taskbar) Selected() (registry.WindowDescriptor, bool) {
	if t.selected < 0 || t.selected >= len(t.windows) {
		return registry.WindowDescriptor{}, false
	}
	return t.windows[t.selected], true
}

// Len returns the number of minimized windows.
func (t Taskbar) Len() int {
	return len(t.windows)
}

// View renders the taskbar as a single line of the given width.
func (t Taskbar) View(width int) string {
	prefix := t.theme.PrimaryBold.Render(" ▤ ")
	if len(t.windows) == 0 {
		line := prefix + t.theme.MutedText.Render("no minimized windows")
		return t.theme.TaskbarBase.Width(width).MaxWidth(width).Render(line)
	}

	var parts []string
	used := lipgloss.Width(prefix)
	for i, w := range t.windows {
		label := truncate(windowLabel(w), maxTaskbarLabel)
		style := t.theme.TaskbarItem
		if i == t.selected {
			style = t.theme.TaskbarSelected
		}
		item := style.Render(label)
		iw := lipgloss.Width(item)
		if used+iw > width && i > t.selected {
			rest := len(t.windows) - i
			parts = append(parts, t.theme.MutedText.Render("+"+strconv.Itoa(rest)))
			break
		}
		parts = append(parts, item)
		used += iw
	}
	line := prefix + strings.Join(parts, "")
	return t.theme.TaskbarBase.Width(width).MaxWidth(width).Render(line)
}

func windowLabel(w registry.WindowDescriptor) string {
	if strings.TrimSpace(w.Title) != "" {
		return w.Title
	}
	return strings.TrimPrefix(w.ID, registry.IDPrefix)
}
