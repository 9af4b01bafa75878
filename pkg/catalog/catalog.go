package catalog

import (
	"sort"
	"strings"
)

// Catalog is an ordered, read-only set of pages keyed by path.
type Catalog struct {
	pages  []Page
	byPath map[string]int
}

// New builds a catalog. Later pages replace earlier ones with the same path;
// the result is ordered by title.
func New(pages ...Page) *Catalog {
	c := &Catalog{byPath: make(map[string]int, len(pages))}
	for _, p := range pages {
		if i, ok := c.byPath[p.Path]; ok {
			c.pages[i] = p
			continue
		}
		c.byPath[p.Path] = len(c.pages)
		c.pages = append(c.pages, p)
	}
	sort.SliceStable(c.pages, func(i, j int) bool {
		return strings.ToLower(c.pages[i].Title) < strings.ToLower(c.pages[j].Title)
	})
	for i, p := range c.pages {
		c.byPath[p.Path] = i
	}
	return c
}

// Get returns the page at path.
func (c *Catalog) Get(path string) (Page, bool) {
	i, ok := c.byPath[path]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

// Pages returns every page in display order.
func (c *Catalog) Pages() []Page {
	return append([]Page(nil), c.pages...)
}

// Len returns the number of pages.
func (c *Catalog) Len() int {
	return len(c.pages)
}
