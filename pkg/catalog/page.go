// Package catalog holds the reference pages shown on the desktop.
//
// Pages are static records: a title, an ordered list of sections shown as
// tabs, and optional walk-through scenarios. They are loaded from YAML files
// and repaired on load so every page yields a valid tab set.
package catalog

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/scenario"
	"github.com/vanderheijden86/algodocs/pkg/tabs"
)

// Section kinds.
const (
	KindProse     = "prose"
	KindScenarios = "scenarios"
)

// Section is one tab of a page.
type Section struct {
	ID    tabs.ID `yaml:"id"`
	Label string  `yaml:"label"`
	Kind  string  `yaml:"kind"`
	Body  string  `yaml:"body"`
}

// Page is a reference page.
type Page struct {
	Path       string              `yaml:"path"`
	Title      string              `yaml:"title"`
	Summary    string              `yaml:"summary"`
	DefaultTab tabs.ID             `yaml:"default_tab"`
	Tabs       []Section           `yaml:"tabs"`
	Scenarios  []scenario.Scenario `yaml:"scenarios"`
	Related    []string            `yaml:"related"`
}

// TabSet returns the page's closed set of tabs.
// It only fails for pages that were not normalized.
func (p Page) TabSet() (tabs.Set, error) {
	ts := make([]tabs.Tab, len(p.Tabs))
	for i, s := range p.Tabs {
		ts[i] = tabs.Tab{ID: s.ID, Label: s.Label}
	}
	set, err := tabs.NewSet(p.DefaultTab, ts...)
	if err != nil {
		return tabs.Set{}, fmt.Errorf("page %s: %w", p.Path, err)
	}
	return set, nil
}

// RouterPage is the identity a tab router needs.
func (p Page) RouterPage() tabs.Page {
	return tabs.Page{Path: p.Path, Title: p.Title}
}

// Location is the page's location with no query.
func (p Page) Location() location.Location {
	return location.New(p.Path)
}

// Section returns the section with id.
func (p Page) Section(id tabs.ID) (Section, bool) {
	for _, s := range p.Tabs {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// HasScenarios reports whether any section plays scenarios.
func (p Page) HasScenarios() bool {
	for _, s := range p.Tabs {
		if s.Kind == KindScenarios {
			return true
		}
	}
	return false
}

// Normalize repairs p in place so that TabSet cannot fail and returns a
// description of every repair made.
func Normalize(p *Page) []string {
	var fixes []string

	p.Path = location.New(p.Path).Path
	if p.Title == "" {
		p.Title = p.Path
		fixes = append(fixes, "missing title")
	}

	if len(p.Tabs) == 0 {
		p.Tabs = []Section{{ID: "overview", Label: "Overview", Kind: KindProse, Body: p.Summary}}
		fixes = append(fixes, "no tabs, added overview")
	}

	seen := make(map[tabs.ID]bool, len(p.Tabs))
	kept := p.Tabs[:0]
	for _, s := range p.Tabs {
		s.ID = tabs.ID(strings.TrimSpace(string(s.ID)))
		switch {
		case s.ID == "":
			fixes = append(fixes, "dropped section without id")
			continue
		case seen[s.ID]:
			fixes = append(fixes, fmt.Sprintf("dropped duplicate section %q", s.ID))
			continue
		}
		seen[s.ID] = true
		if s.Label == "" {
			s.Label = labelFor(string(s.ID))
		}
		switch s.Kind {
		case KindProse, KindScenarios:
		case "":
			s.Kind = KindProse
		default:
			fixes = append(fixes, fmt.Sprintf("section %q has unknown kind %q", s.ID, s.Kind))
			s.Kind = KindProse
		}
		kept = append(kept, s)
	}
	p.Tabs = kept
	if len(p.Tabs) == 0 {
		p.Tabs = []Section{{ID: "overview", Label: "Overview", Kind: KindProse, Body: p.Summary}}
		fixes = append(fixes, "no usable tabs, added overview")
	}

	if !seen[p.DefaultTab] {
		if p.DefaultTab != "" {
			fixes = append(fixes, fmt.Sprintf("default tab %q is not a section", p.DefaultTab))
		}
		p.DefaultTab = p.Tabs[0].ID
	}
	return fixes
}

func labelFor(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
