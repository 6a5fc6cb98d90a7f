package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mercator-hq/rustalize/pkg/catalog"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

type fakeIndexer struct {
	mu    sync.Mutex
	dirs  []string
	calls chan struct{}
	err   error
}

func newFakeIndexer(err error) *fakeIndexer {
	return &fakeIndexer{calls: make(chan struct{}, 16), err: err}
}

func (f *fakeIndexer) Index(ctx context.Context, dir string) (*catalog.Result, error) {
	f.mu.Lock()
	f.dirs = append(f.dirs, dir)
	f.mu.Unlock()

	select {
	case f.calls <- struct{}{}:
	default:
	}
	return &catalog.Result{Files: 1, Parsed: 1, Records: 2}, f.err
}

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{
			name:        "every fifteen minutes",
			schedule:    "*/15 * * * *",
			wantRunning: true,
		},
		{
			name:        "hourly descriptor",
			schedule:    "@hourly",
			wantRunning: true,
		},
		{
			name:        "empty schedule - no error, not running",
			schedule:    "",
			wantRunning: false,
		},
		{
			name:        "invalid schedule",
			schedule:    "invalid cron",
			wantRunning: false,
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewScheduler(newFakeIndexer(nil), "src", tt.schedule)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := scheduler.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			defer scheduler.Stop()

			if scheduler.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", scheduler.IsRunning(), tt.wantRunning)
			}

			next := scheduler.NextRun()
			if tt.wantRunning {
				if next == nil {
					t.Fatal("NextRun() returned nil for running scheduler")
				}
				if !next.After(time.Now()) {
					t.Errorf("NextRun() = %v, want a future time", next)
				}
			} else if next != nil {
				t.Errorf("NextRun() = %v, want nil", next)
			}
		})
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	scheduler := NewScheduler(newFakeIndexer(nil), "src", "@hourly")
	ctx := context.Background()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer scheduler.Stop()

	if err := scheduler.Start(ctx); err == nil {
		t.Error("second Start() error = nil, want error")
	}
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	indexer := newFakeIndexer(nil)
	scheduler := NewScheduler(indexer, "src", "@every 1s")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-indexer.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled indexing did not run")
	}

	scheduler.Stop()
	if scheduler.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}

	indexer.mu.Lock()
	defer indexer.mu.Unlock()
	if len(indexer.dirs) == 0 || indexer.dirs[0] != "src" {
		t.Errorf("indexed dirs = %v, want src", indexer.dirs)
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	scheduler := NewScheduler(newFakeIndexer(nil), "src", "@hourly")

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if scheduler.IsRunning() {
		t.Error("scheduler still running after context cancellation")
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	parseErr := declErrors.NewErrorList()
	parseErr.Add(declErrors.New(declErrors.ErrorTypeMissingBody, "missing body"))

	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"parse errors", parseErr},
		{"store failure", catalog.NewStorageError("memory", "replace", catalog.ErrClosed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewScheduler(newFakeIndexer(tt.err), "src", "")

			result, err := scheduler.RunOnce(context.Background())
			if !errors.Is(err, tt.err) {
				t.Errorf("RunOnce() error = %v, want %v", err, tt.err)
			}
			if result == nil || result.Records != 2 {
				t.Errorf("RunOnce() result = %+v, want 2 records", result)
			}
			if scheduler.Runs() != 1 {
				t.Errorf("Runs() = %d, want 1", scheduler.Runs())
			}
		})
	}
}
