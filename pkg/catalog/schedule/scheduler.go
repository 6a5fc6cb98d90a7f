package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mercator-hq/rustalize/pkg/catalog"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
	"mercator-hq/rustalize/pkg/telemetry/logging"
)

// Indexer is the part of catalog.Indexer the scheduler drives.
type Indexer interface {
	Index(ctx context.Context, dir string) (*catalog.Result, error)
}

// Scheduler re-indexes a directory on a cron schedule.
type Scheduler struct {
	indexer  Indexer
	dir      string
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *logging.Logger
	running  bool
	runs     int
}

// NewScheduler creates a scheduler that indexes dir on schedule.
func NewScheduler(indexer Indexer, dir, schedule string) *Scheduler {
	return &Scheduler{
		indexer:  indexer,
		dir:      dir,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logging.Discard(),
	}
}

// WithLogger sets the logger.
func (s *Scheduler) WithLogger(logger *logging.Logger) *Scheduler {
	if logger != nil {
		s.logger = logger.With("component", "catalog.scheduler")
	}
	return s
}

// Start begins scheduled indexing. The schedule uses standard five-field
// cron syntax:
//   - "*/15 * * * *" - Every 15 minutes
//   - "0 * * * *"    - Hourly
//   - "@daily"       - Once a day at midnight
//
// An empty schedule leaves the scheduler stopped. Jobs run until ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if s.schedule == "" {
		s.logger.Info("index schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule indexing: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("index scheduler started",
		"schedule", s.schedule,
		"dir", s.dir,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// RunOnce executes one indexing cycle. Parse failures are logged and do
// not count as a failed run.
func (s *Scheduler) RunOnce(ctx context.Context) (*catalog.Result, error) {
	ctx = logging.WithParseID(ctx, logging.NewParseID())
	log := s.logger.WithContext(ctx)
	log.Info("starting scheduled indexing", "dir", s.dir)

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	result, err := s.indexer.Index(ctx, s.dir)

	var list *declErrors.ErrorList
	switch {
	case err == nil:
		log.Debug("scheduled indexing completed",
			"records", result.Records,
			"removed", result.Removed,
		)
	case errors.As(err, &list):
		log.Warn("scheduled indexing completed with parse errors",
			"failed", result.Failed,
			"records", result.Records,
			"errors", list.Count(),
		)
	default:
		log.Error("scheduled indexing failed", "error", err)
	}

	return result, err
}

// Stop stops the scheduler and waits for any running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cron == nil || !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("index scheduler stopped")
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Runs returns how many indexing cycles have started.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs
}

// NextRun returns the next scheduled indexing time, or nil when nothing is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil || !s.running {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
