package testutil

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/algodocs/pkg/registry"
)

// AssertWindowCount verifies the expected number of descriptors.
func AssertWindowCount(t *testing.T, windows []registry.WindowDescriptor, expected int) {
	t.Helper()
	if len(windows) != expected {
		t.Errorf("expected %d windows, got %d: %s", expected, len(windows), FormatWindows(windows))
	}
}

// AssertNoDuplicateIDs verifies all descriptor ids are unique.
func AssertNoDuplicateIDs(t *testing.T, windows []registry.WindowDescriptor) {
	t.Helper()
	seen := make(map[string]bool)
	for _, w := range windows {
		if seen[w.ID] {
			t.Errorf("duplicate window ID: %s", w.ID)
		}
		seen[w.ID] = true
	}
}

// AssertWindowOrder verifies the ids appear exactly in the given order.
func AssertWindowOrder(t *testing.T, windows []registry.WindowDescriptor, ids ...string) {
	t.Helper()
	got := make([]string, len(windows))
	for i, w := range windows {
		got[i] = w.ID
	}
	if strings.Join(got, ",") != strings.Join(ids, ",") {
		t.Errorf("window order = [%s], want [%s]", strings.Join(got, ", "), strings.Join(ids, ", "))
	}
}

// AssertWindowsEqual verifies two descriptor lists match field for field.
func AssertWindowsEqual(t *testing.T, got, want []registry.WindowDescriptor) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("got %d windows, want %d\n got: %s\nwant: %s", len(got), len(want), FormatWindows(got), FormatWindows(want))
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("window %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// FormatWindows renders descriptors compactly for failure messages.
func FormatWindows(windows []registry.WindowDescriptor) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.ID + "|" + w.Title + "|" + w.URL + "|" + w.Kind
	}
	return "[" + strings.Join(parts, " ") + "]"
}
