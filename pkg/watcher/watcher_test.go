package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vanderheijden86/algodocs/internal/datasource"
	"github.com/vanderheijden86/algodocs/pkg/registry"
)

var heapSort = registry.WindowDescriptor{
	ID:    "help:/docs/heap-sort",
	Title: "Heap Sort",
	URL:   "/docs/heap-sort?tab=examples",
	Kind:  registry.KindHelp,
}

func waitChange(t *testing.T, w *Watcher, within time.Duration) Change {
	t.Helper()
	select {
	case c := <-w.Changed():
		return c
	case <-time.After(within):
		t.Fatal("timeout waiting for slot change")
		return Change{}
	}
}

func expectNoChange(t *testing.T, w *Watcher, within time.Duration) {
	t.Helper()
	select {
	case c := <-w.Changed():
		t.Fatalf("unexpected change seq %d: %+v", c.Seq, c.Decoded)
	case <-time.After(within):
	}
}

func startPolling(t *testing.T, slot Slot, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{WithPollInterval(10 * time.Millisecond)}, opts...)
	w := New(slot, opts...)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_FileSlotDeliversDecodedWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots", "windows.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	ours := datasource.NewFileSlot(path, nil)

	w := New(ours, WithDebounceDuration(20*time.Millisecond), WithPollInterval(20*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}

	// A second terminal writes through its own slot on the same file.
	theirs := registry.New(datasource.NewFileSlot(path, nil))
	if err := theirs.Minimize(heapSort); err != nil {
		t.Fatal(err)
	}

	c := waitChange(t, w, 2*time.Second)
	if c.Seq != 1 {
		t.Errorf("Seq = %d, want 1", c.Seq)
	}
	if c.Decoded.Status != registry.Valid {
		t.Fatalf("status = %s (err %v)", c.Decoded.Status, c.Decoded.Err)
	}
	if got := c.Windows(); len(got) != 1 || got[0] != heapSort {
		t.Errorf("Windows() = %+v", got)
	}
}

func TestWatcher_PollsSlotWithoutFile(t *testing.T) {
	slot := datasource.NewMemorySlot()
	w := startPolling(t, slot)

	if !w.IsPolling() {
		t.Fatal("a slot without a file can only be polled")
	}
	if w.Path() != "" {
		t.Errorf("Path() = %q", w.Path())
	}

	if err := registry.New(slot).Minimize(heapSort); err != nil {
		t.Fatal(err)
	}
	c := waitChange(t, w, time.Second)
	if got := c.Windows(); len(got) != 1 || got[0].ID != heapSort.ID {
		t.Errorf("Windows() = %+v", got)
	}
}

func TestWatcher_IdenticalRewriteIsSilent(t *testing.T) {
	slot := datasource.NewMemorySlotWith(`[]`)
	w := startPolling(t, slot)

	if err := slot.Write([]byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	expectNoChange(t, w, 80*time.Millisecond)

	if err := registry.New(slot).Minimize(heapSort); err != nil {
		t.Fatal(err)
	}
	if c := waitChange(t, w, time.Second); c.Seq != 1 {
		t.Errorf("Seq = %d, want 1", c.Seq)
	}
}

func TestWatcher_RemovedSlotReadsAsCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.json")
	slot := datasource.NewFileSlot(path, nil)
	if err := registry.New(slot).Minimize(heapSort); err != nil {
		t.Fatal(err)
	}

	w := startPolling(t, slot, WithForcePoll(true))
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	c := waitChange(t, w, time.Second)
	if c.Decoded.Status != registry.Missing {
		t.Errorf("status = %s, want missing", c.Decoded.Status)
	}
	if got := c.Windows(); got == nil || len(got) != 0 {
		t.Errorf("Windows() = %#v, want empty", got)
	}
}

func TestWatcher_CorruptSlotIsDeliveredEmpty(t *testing.T) {
	slot := datasource.NewMemorySlotWith(`[]`)
	w := startPolling(t, slot)

	if err := slot.Write([]byte("not json")); err != nil {
		t.Fatal(err)
	}
	c := waitChange(t, w, time.Second)
	if c.Decoded.Status != registry.Malformed {
		t.Errorf("status = %s, want malformed", c.Decoded.Status)
	}
	if len(c.Windows()) != 0 {
		t.Errorf("Windows() = %+v", c.Windows())
	}
}

func TestWatcher_LatestChangeWins(t *testing.T) {
	slot := datasource.NewMemorySlot()
	w := startPolling(t, slot)
	reg := registry.New(slot)

	if err := reg.Minimize(heapSort); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if err := reg.Remove(heapSort.ID); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)

	c := waitChange(t, w, time.Second)
	if c.Seq != 2 || len(c.Windows()) != 0 {
		t.Errorf("got seq %d with %d windows, want the removal", c.Seq, len(c.Windows()))
	}
	expectNoChange(t, w, 40*time.Millisecond)
}

func TestWatcher_OnChangeCallback(t *testing.T) {
	slot := datasource.NewMemorySlot()
	var (
		mu   sync.Mutex
		seen []uint64
	)
	w := startPolling(t, slot, WithOnChange(func(c Change) {
		mu.Lock()
		seen = append(seen, c.Seq)
		mu.Unlock()
	}))

	if err := registry.New(slot).Minimize(heapSort); err != nil {
		t.Fatal(err)
	}
	waitChange(t, w, time.Second)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("callback saw %v", seen)
	}
}

// flakySlot fails reads once broken is set.
type flakySlot struct {
	*datasource.MemorySlot
	broken atomic.Bool
}

func (s *flakySlot) Read() ([]byte, bool, error) {
	if s.broken.Load() {
		return nil, false, errors.New("permission denied")
	}
	return s.MemorySlot.Read()
}

func TestWatcher_ReadErrorsGoToOnError(t *testing.T) {
	slot := &flakySlot{MemorySlot: datasource.NewMemorySlot()}
	errs := make(chan error, 8)
	w := startPolling(t, slot, WithOnError(func(err error) {
		select {
		case errs <- err:
		default:
		}
	}))

	slot.broken.Store(true)
	select {
	case err := <-errs:
		if err == nil || err.Error() != "permission denied" {
			t.Errorf("err = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("read error not reported")
	}
	expectNoChange(t, w, 30*time.Millisecond)
}

func TestWatcher_StartFailsOnUnreadableSlot(t *testing.T) {
	slot := &flakySlot{MemorySlot: datasource.NewMemorySlot()}
	slot.broken.Store(true)
	w := New(slot)
	if err := w.Start(); err == nil {
		t.Fatal("expected Start to fail")
	}
	if w.IsStarted() {
		t.Error("watcher should not be started")
	}
}

func TestWatcher_StopSilencesChanges(t *testing.T) {
	slot := datasource.NewMemorySlot()
	w := New(slot, WithPollInterval(10*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() = %v, want ErrAlreadyStarted", err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Fatal("still started after Stop")
	}

	if err := registry.New(slot).Minimize(heapSort); err != nil {
		t.Fatal(err)
	}
	expectNoChange(t, w, 60*time.Millisecond)

	// Restart takes the current contents as the baseline.
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	expectNoChange(t, w, 40*time.Millisecond)
}

func TestWatcher_EnvForcePolling(t *testing.T) {
	t.Setenv("ALGODOCS_FORCE_POLL", "1")

	path := filepath.Join(t.TempDir(), "windows.json")
	w := startPolling(t, datasource.NewFileSlot(path, nil))
	if !w.IsPolling() {
		t.Fatal("expected polling when ALGODOCS_FORCE_POLL is set")
	}
}

func TestWatcher_RemoteFilesystemUsesPolling(t *testing.T) {
	orig := detectFilesystemTypeFunc
	detectFilesystemTypeFunc = func(string) FilesystemType { return FSTypeNFS }
	t.Cleanup(func() { detectFilesystemTypeFunc = orig })

	path := filepath.Join(t.TempDir(), "windows.json")
	w := startPolling(t, datasource.NewFileSlot(path, nil))
	if !w.IsPolling() {
		t.Fatal("expected polling on a remote filesystem")
	}
	if got := w.FilesystemType(); got != FSTypeNFS {
		t.Errorf("FilesystemType() = %v, want nfs", got)
	}
}

func TestWatcher_PollInterval(t *testing.T) {
	slot := datasource.NewMemorySlot()
	if got := New(slot).PollInterval(); got != DefaultPollInterval {
		t.Errorf("default poll interval = %v", got)
	}
	if got := New(slot, WithPollInterval(500*time.Millisecond)).PollInterval(); got != 500*time.Millisecond {
		t.Errorf("poll interval = %v", got)
	}
	if got := New(slot, WithPollInterval(0)).PollInterval(); got != DefaultPollInterval {
		t.Errorf("zero interval should keep the default, got %v", got)
	}
}

func TestFilesystemType_String(t *testing.T) {
	tests := []struct {
		fsType FilesystemType
		want   string
	}{
		{FSTypeUnknown, "unknown"},
		{FSTypeLocal, "local"},
		{FSTypeNFS, "nfs"},
		{FSTypeSMB, "smb"},
		{FSTypeSSHFS, "sshfs"},
		{FSTypeFUSE, "fuse"},
		{FilesystemType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.fsType.String(); got != tt.want {
			t.Errorf("FilesystemType(%d).String() = %q, want %q", tt.fsType, got, tt.want)
		}
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{" Yes ", true},
		{"on", true},
		{"0", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ALGODOCS_TEST_BOOL", tt.value)
			if got := envBool("ALGODOCS_TEST_BOOL"); got != tt.want {
				t.Errorf("envBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDetectFilesystemType(t *testing.T) {
	if got := DetectFilesystemType(""); got != FSTypeUnknown {
		t.Errorf("DetectFilesystemType(\"\") = %v", got)
	}
	// A missing slot file is classified by its directory.
	dir := t.TempDir()
	if got, want := DetectFilesystemType(filepath.Join(dir, "slots", "windows.json")), DetectFilesystemType(dir); got != want {
		t.Errorf("missing path classified %v, directory %v", got, want)
	}
}
