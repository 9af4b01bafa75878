// Package watcher reports when another process rewrites the taskbar slot.
//
// A Watcher re-reads the slot after each burst of activity and delivers the
// decoded windows only when the stored bytes differ from the last read, so
// a touch or an identical rewrite is silent. File slots are watched with
// fsnotify on their directory, which also sees atomic rename-into-place
// writes. Slots without a local file, slots on remote filesystems, and
// ALGODOCS_FORCE_POLL fall back to reading the slot on a ticker.
package watcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/algodocs/pkg/logging"
	"github.com/vanderheijden86/algodocs/pkg/registry"
)

// DefaultPollInterval is how often a polled slot is re-read.
const DefaultPollInterval = 2 * time.Second

// ErrAlreadyStarted is returned by Start on a running watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// Slot is the stored value being watched.
type Slot interface {
	Read() (raw []byte, present bool, err error)
	// Path is the file backing the slot, or "" when it can only be polled.
	Path() string
}

// Change is one observed rewrite of the slot.
type Change struct {
	// Decoded is the slot as read after the rewrite. A cleared or corrupt
	// slot arrives with a non-valid status and no windows.
	Decoded registry.Decoded
	// Seq numbers the changes delivered by this watcher, starting at 1.
	Seq uint64
}

// Windows returns the decoded windows, empty unless the slot is valid.
func (c Change) Windows() []registry.WindowDescriptor {
	if !c.Decoded.OK() {
		return []registry.WindowDescriptor{}
	}
	return c.Decoded.Windows
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets how long a burst of file events must be quiet
// before the slot is re-read.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the re-read interval used in polling mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithForcePoll polls even when fsnotify could watch the slot file.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// WithOnChange sets a callback run for every delivered change.
func WithOnChange(fn func(Change)) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the callback for read and fsnotify errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithLogger sets the logger for mode selection and delivered changes.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher delivers rewrites of one slot.
type Watcher struct {
	slot         Slot
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	onChange     func(Change)
	onError      func(error)
	log          *slog.Logger

	debouncer *Debouncer
	changes   chan Change

	// checkMu serializes re-reads so the last-seen bytes advance in order.
	checkMu sync.Mutex

	mu          sync.RWMutex
	cancel      context.CancelFunc
	started     bool
	polling     bool
	fsType      FilesystemType
	last        []byte
	lastPresent bool
	seq         uint64
}

// New returns a watcher for slot. Nothing is watched until Start.
func New(slot Slot, opts ...Option) *Watcher {
	w := &Watcher{
		slot:         slot,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		onChange:     func(Change) {},
		onError:      func(error) {},
		changes:      make(chan Change, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logging.WithComponent("watcher")
	}
	if p := slot.Path(); p != "" {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.path = p
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w
}

// Start records the current slot contents and begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	raw, present, err := w.slot.Read()
	if err != nil {
		return fmt.Errorf("reading slot: %w", err)
	}
	w.last, w.lastPresent = bytes.Clone(raw), present

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.fsType = FSTypeUnknown
	w.polling = w.forcePoll || envBool("ALGODOCS_FORCE_POLL") || w.path == ""
	if !w.polling {
		w.fsType = detectFilesystemTypeFunc(filepath.Dir(w.path))
		w.polling = isRemoteFilesystem(w.fsType)
	}
	if !w.polling {
		fsw, err := watchDir(filepath.Dir(w.path))
		if err != nil {
			w.log.Debug("fsnotify unavailable, polling slot", "err", err)
			w.polling = true
		} else {
			go w.runEvents(ctx, fsw)
		}
	}
	if w.polling {
		go w.runPoll(ctx)
	}

	w.started = true
	w.log.Debug("watching slot", "path", w.path, "polling", w.polling, "fs", w.fsType.String())
	return nil
}

// Stop ends watching. The Changed channel stays open; a receiver blocked on
// it is released only by process exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	w.debouncer.Cancel()
	w.started = false
}

// Changed delivers the latest undelivered change. An older change still
// waiting in the channel is replaced.
func (w *Watcher) Changed() <-chan Change {
	return w.changes
}

// Path returns the watched file, or "" for a polled slot without one.
func (w *Watcher) Path() string {
	return w.path
}

// IsPolling reports whether the slot is re-read on a ticker.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// FilesystemType returns the classification of the slot's directory.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fsType
}

// PollInterval returns the re-read interval of polling mode.
func (w *Watcher) PollInterval() time.Duration {
	return w.pollInterval
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func watchDir(dir string) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return fsw, nil
}

// runEvents re-reads the slot after any event naming the slot file,
// including removal, which reads as a cleared taskbar.
func (w *Watcher) runEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == name {
				w.debouncer.Trigger(w.check)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) runPoll(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check re-reads the slot and delivers a change if its bytes moved.
func (w *Watcher) check() {
	w.checkMu.Lock()
	defer w.checkMu.Unlock()

	raw, present, err := w.slot.Read()
	if err != nil {
		w.onError(err)
		return
	}

	w.mu.Lock()
	if !w.started || (present == w.lastPresent && bytes.Equal(raw, w.last)) {
		w.mu.Unlock()
		return
	}
	w.last, w.lastPresent = bytes.Clone(raw), present
	w.seq++
	c := Change{Decoded: registry.Decode(raw, present), Seq: w.seq}
	w.mu.Unlock()

	w.log.Debug("slot changed", "seq", c.Seq, "status", c.Decoded.Status.String(), "windows", len(c.Decoded.Windows))
	w.onChange(c)
	w.publish(c)
}

func (w *Watcher) publish(c Change) {
	for {
		select {
		case w.changes <- c:
			return
		default:
		}
		select {
		case <-w.changes:
		default:
		}
	}
}
