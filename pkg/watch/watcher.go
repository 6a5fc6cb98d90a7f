package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/rustalize/pkg/config"
	"mercator-hq/rustalize/pkg/telemetry/logging"
)

// Op is the kind of change reported for a file.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Removed reports whether the file no longer exists at its path.
func (o Op) Removed() bool {
	return o == OpRemove || o == OpRename
}

// Event is a debounced change to one source file.
type Event struct {
	Path string
	Op   Op
}

// Handler processes a batch of debounced events. Events are sorted by path
// and carry the last operation seen for each file.
type Handler func(ctx context.Context, events []Event)

// EventRecorder counts raw file system events.
type EventRecorder interface {
	RecordWatchEvent(op string)
}

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the file or directory to watch. Directories are watched
	// recursively.
	Path string

	// Debounce is the quiet period after the last event before the
	// handler runs (default: 250ms)
	Debounce time.Duration

	// Extensions is the list of file extensions to watch (default: ".rs")
	Extensions []string

	// IncludeHidden enables dot files and dot directories.
	IncludeHidden bool
}

// FromConfig builds a watcher configuration for path from the watch section.
func FromConfig(cfg config.WatchConfig, path string) *Config {
	return &Config{
		Path:          path,
		Debounce:      cfg.Debounce,
		Extensions:    cfg.Extensions,
		IncludeHidden: cfg.IncludeHidden,
	}
}

// Watcher watches declaration sources for changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	config   *Config
	debounce *Debouncer
	recorder EventRecorder

	mu       sync.Mutex
	pending  map[string]Op
	running  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher. Call Watch to start it.
func New(cfg *Config, logger *logging.Logger) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 250 * time.Millisecond
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".rs"}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		pending:  make(map[string]Op),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// WithRecorder counts every accepted event on r.
func (w *Watcher) WithRecorder(r EventRecorder) *Watcher {
	w.recorder = r
	return w
}

// Watch blocks, delivering debounced events to handle, until ctx is
// cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, handle Handler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.InfoContext(ctx, "file watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.InfoContext(ctx, "file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event, handle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.ErrorContext(ctx, "file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event, handle Handler) {
	if event.Has(fsnotify.Create) && w.watchNewDir(event.Name) {
		return
	}
	if !w.shouldProcessEvent(event) {
		return
	}

	op := opOf(event.Op)
	if w.recorder != nil {
		w.recorder.RecordWatchEvent(string(op))
	}
	w.logger.DebugContext(ctx, "file event detected", "path", event.Name, "op", op)

	w.mu.Lock()
	w.pending[event.Name] = op
	w.mu.Unlock()

	w.debounce.Trigger(func() {
		if events := w.drain(); len(events) > 0 {
			handle(ctx, events)
		}
	})
}

// drain returns and clears the pending events, sorted by path.
func (w *Watcher) drain() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	events := make([]Event, 0, len(w.pending))
	for path, op := range w.pending {
		events = append(events, Event{Path: path, Op: op})
	}
	w.pending = make(map[string]Op)

	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	return events
}

// Stop stops the watcher and cancels any pending batch.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.close()
	}
	w.mu.Unlock()

	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh

	return w.close()
}

func (w *Watcher) close() error {
	w.debounce.Stop()
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// addPath adds a file or directory to the watcher.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// watchNewDir starts watching a directory created under a watched one. It
// returns false when path is not a directory.
func (w *Watcher) watchNewDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if w.hidden(path) {
		return true
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
	return true
}

// shouldProcessEvent determines if an event should trigger a reparse.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if !w.Matches(event.Name) {
		return false
	}
	return !w.hidden(event.Name)
}

// Matches reports whether path has one of the watched extensions.
func (w *Watcher) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.config.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (w *Watcher) hidden(path string) bool {
	return !w.config.IncludeHidden && strings.HasPrefix(filepath.Base(path), ".")
}

// opOf maps an fsnotify operation to the most significant Op it contains.
func opOf(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Create):
		return OpCreate
	default:
		return OpWrite
	}
}
