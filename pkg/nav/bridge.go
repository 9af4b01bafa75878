package nav

import (
	"log/slog"

	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/registry"
)

// Registry is the part of the window registry the bridge drives.
type Registry interface {
	Minimize(d registry.WindowDescriptor) error
	Get(id string) (registry.WindowDescriptor, bool)
	Remove(id string) error
}

// Bridge turns taskbar actions into registry updates and history moves.
type Bridge struct {
	reg      Registry
	host     Host
	fallback location.Location
	log      *slog.Logger
}

// NewBridge returns a bridge. A zero fallback means the catalog root.
func NewBridge(reg Registry, host Host, fallback location.Location, log *slog.Logger) *Bridge {
	if fallback.Path == "" {
		fallback = location.New(location.Root)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{reg: reg, host: host, fallback: fallback, log: log.With("component", "nav")}
}

// MinimizeAndClose records the page at path on the taskbar and leaves it.
// currentURL is the full location being left, query included, so a restore
// lands on the same tab. A failed save is logged and returned, but the
// window closes regardless.
func (b *Bridge) MinimizeAndClose(path, title, currentURL string) error {
	d := registry.WindowDescriptor{
		ID:    registry.IDForPath(path),
		Title: title,
		URL:   currentURL,
		Kind:  registry.KindHelp,
	}
	err := b.reg.Minimize(d)
	if err != nil {
		b.log.Warn("minimize not persisted", "id", d.ID, "err", err)
	}
	b.leave()
	return err
}

// Restore reopens a minimized window: the descriptor leaves the taskbar and
// its URL is pushed onto the history. It reports false for unknown ids.
func (b *Bridge) Restore(id string) (location.Location, bool) {
	d, ok := b.reg.Get(id)
	if !ok {
		return location.Location{}, false
	}
	if err := b.reg.Remove(id); err != nil {
		b.log.Warn("restore not persisted", "id", id, "err", err)
	}
	loc := location.Parse(d.URL)
	b.host.Navigate(loc)
	return loc, true
}

func (b *Bridge) leave() {
	if b.host.Depth() > 0 {
		b.host.Back()
		return
	}
	b.host.Navigate(b.fallback)
}
