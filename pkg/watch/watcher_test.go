package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/rustalize/pkg/config"
)

// collector gathers handler batches for assertions.
type collector struct {
	mu      sync.Mutex
	batches [][]Event
	ch      chan struct{}
}

func newCollector() *collector {
	return &collector{ch: make(chan struct{}, 16)}
}

func (c *collector) handle(ctx context.Context, events []Event) {
	c.mu.Lock()
	c.batches = append(c.batches, events)
	c.mu.Unlock()
	c.ch <- struct{}{}
}

func (c *collector) wait(t *testing.T) []Event {
	t.Helper()
	select {
	case <-c.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

type countingRecorder struct {
	mu  sync.Mutex
	ops map[string]int
}

func (r *countingRecorder) RecordWatchEvent(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ops == nil {
		r.ops = make(map[string]int)
	}
	r.ops[op]++
}

func (r *countingRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.ops {
		n += c
	}
	return n
}

// startWatcher runs w in the background and stops it at cleanup.
func startWatcher(t *testing.T, w *Watcher, handle Handler) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Watch(ctx, handle) }()

	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Watch() error = %v", err)
		}
		_ = w.Stop()
	})

	// Give fsnotify time to register the watches.
	time.Sleep(100 * time.Millisecond)
}

func TestNew(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("New(nil) error = nil, want error")
	}

	cfg := &Config{Path: t.TempDir()}
	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".rs" {
		t.Errorf("Extensions = %v, want [.rs]", cfg.Extensions)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.WatchConfig{
		Debounce:      time.Second,
		Extensions:    []string{".rsi"},
		IncludeHidden: true,
	}, "src")

	if cfg.Path != "src" || cfg.Debounce != time.Second || !cfg.IncludeHidden {
		t.Errorf("FromConfig() = %+v", cfg)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".rsi" {
		t.Errorf("Extensions = %v, want [.rsi]", cfg.Extensions)
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	w, err := New(&Config{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write source", fsnotify.Event{Name: "src/lib.rs", Op: fsnotify.Write}, true},
		{"upper case extension", fsnotify.Event{Name: "src/LIB.RS", Op: fsnotify.Create}, true},
		{"remove source", fsnotify.Event{Name: "src/lib.rs", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "src/lib.rs", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "src/lib.go", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "src/.lib.rs", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestOpOf(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Create | fsnotify.Write, OpCreate},
		{fsnotify.Write | fsnotify.Remove, OpRemove},
	}

	for _, tt := range tests {
		if got := opOf(tt.op); got != tt.want {
			t.Errorf("opOf(%v) = %q, want %q", tt.op, got, tt.want)
		}
	}

	if !OpRename.Removed() || OpWrite.Removed() {
		t.Error("Removed() misclassified rename or write")
	}
}

func TestWatcher_DeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	recorder := &countingRecorder{}
	w, err := New(&Config{Path: dir, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.WithRecorder(recorder)

	c := newCollector()
	startWatcher(t, w, c.handle)

	a := filepath.Join(dir, "a.rs")
	b := filepath.Join(dir, "b.rs")
	for _, path := range []string{b, a, filepath.Join(dir, "notes.txt")} {
		if err := os.WriteFile(path, []byte("pub struct S { x: i32 }\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	events := c.wait(t)
	if len(events) != 2 {
		t.Fatalf("batch = %v, want events for a.rs and b.rs", events)
	}
	if events[0].Path != a || events[1].Path != b {
		t.Errorf("batch paths = [%s %s], want [%s %s]", events[0].Path, events[1].Path, a, b)
	}
	if recorder.total() == 0 {
		t.Error("recorder saw no events")
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&Config{Path: dir, Debounce: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c := newCollector()
	startWatcher(t, w, c.handle)

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "inner.rs")
	if err := os.WriteFile(path, []byte("pub enum E { A }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := c.wait(t)
	if len(events) == 0 || events[len(events)-1].Path != path {
		t.Errorf("batch = %v, want event for %s", events, path)
	}
}

func TestWatcher_WatchTwice(t *testing.T) {
	w, err := New(&Config{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	startWatcher(t, w, func(context.Context, []Event) {})

	if err := w.Watch(context.Background(), nil); err == nil {
		t.Error("second Watch() error = nil, want error")
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	w, err := New(&Config{Path: filepath.Join(t.TempDir(), "missing")}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch(context.Background(), nil); err == nil {
		t.Error("Watch() error = nil, want error for missing path")
	}
}
