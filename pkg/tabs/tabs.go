// Package tabs keeps a page's active section in sync with its addressable
// location and its document title.
//
// The in-memory active tab is the single source of truth. The location's
// "tab" query key and the title are derived from it by a one-directional
// projection; the location is read exactly once, when a Router is created.
package tabs

import (
	"errors"
	"fmt"
	"net/url"
)

// QueryKey is the location query parameter holding the active tab.
const QueryKey = "tab"

// ID identifies one tab within a page.
type ID string

// Tab is a member of a page's closed set of sections.
type Tab struct {
	ID    ID
	Label string
}

// Set errors, returned only when a page is assembled incorrectly.
var (
	ErrEmptySet       = errors.New("tab set is empty")
	ErrDuplicateTab   = errors.New("duplicate tab id")
	ErrDefaultMissing = errors.New("default tab is not a member of the set")
)

// Set is an ordered, closed set of tabs with a designated default.
type Set struct {
	tabs  []Tab
	index map[ID]int
	def   ID
}

// NewSet builds a closed set. def must be one of tabs.
func NewSet(def ID, tabs ...Tab) (Set, error) {
	if len(tabs) == 0 {
		return Set{}, ErrEmptySet
	}
	index := make(map[ID]int, len(tabs))
	for i, t := range tabs {
		if _, dup := index[t.ID]; dup {
			return Set{}, fmt.Errorf("%w: %q", ErrDuplicateTab, t.ID)
		}
		index[t.ID] = i
	}
	if _, ok := index[def]; !ok {
		return Set{}, fmt.Errorf("%w: %q", ErrDefaultMissing, def)
	}
	return Set{tabs: append([]Tab(nil), tabs...), index: index, def: def}, nil
}

// Contains reports whether id is a member of the set.
func (s Set) Contains(id ID) bool {
	_, ok := s.index[id]
	return ok
}

// Default returns the designated default member.
func (s Set) Default() ID {
	return s.def
}

// Coerce returns id if it is a member, otherwise the default.
func (s Set) Coerce(id ID) ID {
	if s.Contains(id) {
		return id
	}
	return s.def
}

// Tab returns the member with the given id.
func (s Set) Tab(id ID) (Tab, bool) {
	i, ok := s.index[id]
	if !ok {
		return Tab{}, false
	}
	return s.tabs[i], true
}

// Tabs returns the members in menu order.
func (s Set) Tabs() []Tab {
	return append([]Tab(nil), s.tabs...)
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.tabs)
}

// IndexOf returns the menu position of id, or -1.
func (s Set) IndexOf(id ID) int {
	i, ok := s.index[id]
	if !ok {
		return -1
	}
	return i
}

// ResolveInitial reads the tab query key and returns it when it names a
// member of set, otherwise the set's default.
func ResolveInitial(query url.Values, set Set) ID {
	if query == nil {
		return set.Default()
	}
	return set.Coerce(ID(query.Get(QueryKey)))
}
