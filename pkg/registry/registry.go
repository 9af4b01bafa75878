// Package registry persists the windows a user has minimized to the taskbar.
//
// The registry is a list of WindowDescriptor values stored as JSON in a single
// named slot. Persistence is best-effort: an unreadable slot reads as an empty
// list, and a failed write is logged without blocking the caller.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/vanderheijden86/algodocs/pkg/metrics"
)

// SlotKey is the name of the slot holding the minimized windows.
const SlotKey = "algodocs.minimized-windows"

// IDPrefix namespaces descriptor ids derived from page paths.
const IDPrefix = "help:"

// KindHelp is the kind recorded for documentation windows.
const KindHelp = "help"

// WindowDescriptor describes one minimized documentation window.
type WindowDescriptor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
}

// IDForPath derives the descriptor id of the page at path.
func IDForPath(path string) string {
	return IDPrefix + path
}

// Slot is one value in a durable key-value store.
// Read reports present=false when nothing has been written yet.
type Slot interface {
	Read() (raw []byte, present bool, err error)
	Write(raw []byte) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for best-effort warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// Registry is the taskbar's list of minimized windows.
//
// Every mutation is a read-modify-write against the slot, so a Registry holds
// no cached state and several registries over one slot stay consistent.
type Registry struct {
	slot Slot
	log  *slog.Logger
}

// New returns a registry over slot.
func New(slot Slot, opts ...Option) *Registry {
	r := &Registry{slot: slot, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "registry", "slot", SlotKey)
	return r
}

// List returns the minimized windows, least recently minimized first.
// It never fails: unreadable state is an empty list.
func (r *Registry) List() []WindowDescriptor {
	return r.Load().Windows
}

// Load reads and decodes the slot, reporting why it fell back to empty.
func (r *Registry) Load() Decoded {
	defer metrics.Timer(metrics.SlotRead)()
	raw, present, err := r.slot.Read()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrStorageRead, err)
		r.log.Warn("reading windows failed, using empty list", "err", err)
		return Decoded{Status: Unreadable, Windows: []WindowDescriptor{}, Err: err}
	}
	d := Decode(raw, present)
	if !d.OK() {
		if d.Status != Missing {
			r.log.Warn("stored windows unreadable, using empty list", "status", d.Status.String(), "err", d.Err)
		}
		d.Windows = []WindowDescriptor{}
	}
	return d
}

// Get returns the descriptor with id.
func (r *Registry) Get(id string) (WindowDescriptor, bool) {
	for _, w := range r.List() {
		if w.ID == id {
			return w, true
		}
	}
	return WindowDescriptor{}, false
}

// Minimize upserts d and moves it to the end of the list. The returned error
// is informational; the in-memory outcome does not depend on it.
// A descriptor without an id is refused and the slot is left untouched.
func (r *Registry) Minimize(d WindowDescriptor) error {
	if d.ID == "" {
		err := fmt.Errorf("%w: %w", ErrStorageWrite, ErrBlankID)
		r.log.Warn("refusing to minimize window", "title", d.Title, "url", d.URL, "err", err)
		return err
	}
	windows := without(r.List(), d.ID)
	windows = append(windows, d)
	r.log.Debug("minimize", "id", d.ID, "count", len(windows))
	return r.write(windows)
}

// Remove drops the descriptor with id. Removing an absent id is a no-op.
func (r *Registry) Remove(id string) error {
	current := r.List()
	windows := without(current, id)
	if len(windows) == len(current) {
		return nil
	}
	r.log.Debug("remove", "id", id, "count", len(windows))
	return r.write(windows)
}

// Clear empties the taskbar.
func (r *Registry) Clear() error {
	return r.write(nil)
}

func (r *Registry) write(windows []WindowDescriptor) error {
	defer metrics.Timer(metrics.SlotWrite)()
	raw, err := Encode(windows)
	if err != nil {
		err = fmt.Errorf("%w: encoding: %v", ErrStorageWrite, err)
		r.log.Warn("saving windows failed", "err", err)
		return err
	}
	if err := r.slot.Write(raw); err != nil {
		err = fmt.Errorf("%w: %w", ErrStorageWrite, err)
		r.log.Warn("saving windows failed", "err", err)
		return err
	}
	return nil
}

func without(windows []WindowDescriptor, id string) []WindowDescriptor {
	out := make([]WindowDescriptor, 0, len(windows))
	for _, w := range windows {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return out
}
