package tabs

import (
	"fmt"

	"github.com/vanderheijden86/algodocs/pkg/location"
)

// Page is the identity a Router needs from the page that owns it.
type Page struct {
	Path  string
	Title string
}

// Projection is what the active tab looks like outside the router.
type Projection struct {
	Location location.Location
	Title    string
}

// Sink receives projections. Implementations must update the location in
// place (replacing the current history entry, never pushing) and set the
// document title.
type Sink interface {
	Project(Projection)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Projection)

// Project calls f(p).
func (f SinkFunc) Project(p Projection) { f(p) }

// Title formats the document title for a page and tab label.
func Title(pageTitle, tabLabel string) string {
	return fmt.Sprintf("%s (%s)", pageTitle, tabLabel)
}

// Router owns the active tab of one page instance.
type Router struct {
	page   Page
	set    Set
	base   location.Location
	active ID
	sink   Sink
}

// NewRouter resolves the initial tab from loc and projects it once.
// A nil sink discards projections.
func NewRouter(page Page, set Set, loc location.Location, sink Sink) *Router {
	if page.Path == "" {
		page.Path = loc.PathOrRoot()
	}
	r := &Router{
		page:   page,
		set:    set,
		base:   location.Location{Path: loc.PathOrRoot(), Query: loc.Query},
		active: ResolveInitial(loc.Query, set),
		sink:   sink,
	}
	r.sync()
	return r
}

// SetActive makes id the active tab and synchronizes. Values outside the set
// are coerced to the default.
func (r *Router) SetActive(id ID) {
	r.active = r.set.Coerce(id)
	r.sync()
}

// Cycle moves delta positions through the menu, wrapping around.
func (r *Router) Cycle(delta int) {
	n := r.set.Len()
	if n == 0 {
		return
	}
	i := r.set.IndexOf(r.active)
	r.SetActive(r.set.tabs[((i+delta)%n+n)%n].ID)
}

// Active returns the active tab id.
func (r *Router) Active() ID {
	return r.active
}

// ActiveTab returns the active tab record.
func (r *Router) ActiveTab() Tab {
	t, _ := r.set.Tab(r.active)
	return t
}

// Tabs returns the page's menu.
func (r *Router) Tabs() []Tab {
	return r.set.Tabs()
}

// Page returns the identity of the page owning the router.
func (r *Router) Page() Page {
	return r.page
}

// Projection derives the location and title from the active tab.
func (r *Router) Projection() Projection {
	return Projection{
		Location: r.base.With(QueryKey, string(r.active)),
		Title:    Title(r.page.Title, r.ActiveTab().Label),
	}
}

func (r *Router) sync() {
	if r.sink == nil {
		return
	}
	r.sink.Project(r.Projection())
}
