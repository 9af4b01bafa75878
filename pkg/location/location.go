// Package location models the addressable location of a page: a path plus a
// query string, e.g. "/docs/heap-sort?tab=examples".
package location

import (
	"net/url"
	"strings"
)

// Root is the catalog location every session starts from.
const Root = "/"

// Location is a path and its query parameters.
// The zero value is equivalent to Root with no query.
type Location struct {
	Path  string
	Query url.Values
}

// New returns a location for path with no query.
func New(path string) Location {
	return Location{Path: cleanPath(path)}
}

// Parse parses "path?query". Anything url.Parse rejects is treated as a bare
// path so user input never fails to produce a location.
func Parse(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return New(Root)
	}
	u, err := url.Parse(raw)
	if err != nil {
		path, query, _ := strings.Cut(raw, "?")
		q, _ := url.ParseQuery(query)
		return Location{Path: cleanPath(path), Query: q}
	}
	return Location{Path: cleanPath(u.Path), Query: u.Query()}
}

// Get returns the first value for key, or "".
func (l Location) Get(key string) string {
	if l.Query == nil {
		return ""
	}
	return l.Query.Get(key)
}

// With returns a copy of l with key set to value. l is not modified.
func (l Location) With(key, value string) Location {
	q := make(url.Values, len(l.Query)+1)
	for k, vs := range l.Query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set(key, value)
	return Location{Path: l.PathOrRoot(), Query: q}
}

// Without returns a copy of l with key removed.
func (l Location) Without(key string) Location {
	if l.Query == nil {
		return Location{Path: l.PathOrRoot()}
	}
	q := make(url.Values, len(l.Query))
	for k, vs := range l.Query {
		if k == key {
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	return Location{Path: l.PathOrRoot(), Query: q}
}

// PathOrRoot returns the path, or Root for the zero value.
func (l Location) PathOrRoot() string {
	if l.Path == "" {
		return Root
	}
	return l.Path
}

// IsRoot reports whether l points at the catalog.
func (l Location) IsRoot() bool {
	return l.PathOrRoot() == Root
}

// String formats the location with query keys in sorted order.
func (l Location) String() string {
	path := l.PathOrRoot()
	if len(l.Query) == 0 {
		return path
	}
	return path + "?" + l.Query.Encode()
}

// Equal compares the formatted forms.
func (l Location) Equal(other Location) bool {
	return l.String() == other.String()
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return Root
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = Root
		}
	}
	return p
}
