// Package nav connects page windows to the session history and the taskbar.
package nav

import "github.com/vanderheijden86/algodocs/pkg/location"

// Host is the navigation surface a page window runs inside.
type Host interface {
	// Depth is the number of entries behind the current one.
	Depth() int
	// Back returns to the previous entry. It is a no-op at depth 0.
	Back()
	// Navigate pushes loc as a new entry.
	Navigate(loc location.Location)
	// Replace overwrites the current entry in place.
	Replace(loc location.Location)
	Current() location.Location
}

// History is an in-process session history: a stack of locations with the
// current entry on top. Forward entries are not kept; a push after Back
// discards them.
type History struct {
	entries []location.Location
}

// NewHistory returns a history whose only entry is start.
func NewHistory(start location.Location) *History {
	return &History{entries: []location.Location{start}}
}

func (h *History) Depth() int {
	return len(h.entries) - 1
}

func (h *History) Back() {
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
}

func (h *History) Navigate(loc location.Location) {
	h.entries = append(h.entries, loc)
}

func (h *History) Replace(loc location.Location) {
	h.entries[len(h.entries)-1] = loc
}

func (h *History) Current() location.Location {
	return h.entries[len(h.entries)-1]
}

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []location.Location {
	return append([]location.Location(nil), h.entries...)
}
