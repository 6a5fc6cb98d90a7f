package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mercator-hq/rustalize/pkg/cli"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
	"mercator-hq/rustalize/pkg/decl/parser"
	"mercator-hq/rustalize/pkg/telemetry/logging"
)

// DefaultExtensions are the file extensions indexed when none are configured.
var DefaultExtensions = []string{".rs"}

// Recorder receives the outcome of every index run.
type Recorder interface {
	RecordIndexRun(parsed, failed, records int, duration time.Duration, err error)
}

// Result summarizes one index run.
type Result struct {
	// Files is the number of source files visited.
	Files int `json:"files" yaml:"files"`

	// Parsed is the number of files whose records were replaced.
	Parsed int `json:"parsed" yaml:"parsed"`

	// Failed is the number of files that could not be parsed. Their
	// previous records are left untouched.
	Failed int `json:"failed" yaml:"failed"`

	// Records is the number of declarations written.
	Records int `json:"records" yaml:"records"`

	// Removed is the number of records deleted for files that no longer exist.
	Removed int64 `json:"removed" yaml:"removed"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Indexer walks a directory, parses every matching file, and writes the
// declarations to a Store.
type Indexer struct {
	parser        *parser.Parser
	store         Store
	extensions    []string
	includeHidden bool
	logger        *logging.Logger
	progress      cli.ProgressReporter
	recorder      Recorder
}

// NewIndexer creates an indexer that parses with p and writes to store.
func NewIndexer(p *parser.Parser, store Store) *Indexer {
	return &Indexer{
		parser:     p,
		store:      store,
		extensions: DefaultExtensions,
		logger:     logging.Discard(),
	}
}

// WithExtensions restricts indexing to files with one of exts.
func (ix *Indexer) WithExtensions(exts []string) *Indexer {
	if len(exts) > 0 {
		ix.extensions = exts
	}
	return ix
}

// WithIncludeHidden enables indexing of dot files and dot directories.
func (ix *Indexer) WithIncludeHidden(include bool) *Indexer {
	ix.includeHidden = include
	return ix
}

// WithLogger sets the logger.
func (ix *Indexer) WithLogger(logger *logging.Logger) *Indexer {
	if logger != nil {
		ix.logger = logger
	}
	return ix
}

// WithProgress reports per-file progress to p.
func (ix *Indexer) WithProgress(p cli.ProgressReporter) *Indexer {
	ix.progress = p
	return ix
}

// WithRecorder sets the recorder notified after each run.
func (ix *Indexer) WithRecorder(r Recorder) *Indexer {
	ix.recorder = r
	return ix
}

// Index parses every matching file under dir and replaces its records.
//
// Parse failures do not stop the run: they are collected and returned as a
// *declErrors.ErrorList alongside a complete Result. Store failures and
// context cancellation abort the run.
func (ix *Indexer) Index(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()
	if logging.GetParseID(ctx) == "" {
		ctx = logging.WithParseID(ctx, logging.NewParseID())
	}
	log := ix.logger.WithContext(ctx)

	files, err := ix.collect(dir)
	if err != nil {
		return nil, err
	}

	log.Info("indexing started", "dir", dir, "files", len(files))
	if ix.progress != nil {
		ix.progress.Start(int64(len(files)))
	}

	result := &Result{Files: len(files)}
	errs := declErrors.NewErrorList()

	runErr := ix.run(ctx, files, result, errs)
	if runErr == nil {
		runErr = ix.prune(ctx, dir, files, result)
	}
	result.Duration = time.Since(start)

	if ix.recorder != nil {
		recorded := runErr
		if recorded == nil {
			recorded = errs.ToError()
		}
		ix.recorder.RecordIndexRun(result.Parsed, result.Failed, result.Records, result.Duration, recorded)
	}

	if runErr != nil {
		if ix.progress != nil {
			ix.progress.Error(runErr)
		}
		log.Error("indexing aborted", "error", runErr)
		return result, runErr
	}

	if ix.progress != nil {
		ix.progress.Finish()
	}
	log.Info("indexing completed",
		"parsed", result.Parsed,
		"failed", result.Failed,
		"records", result.Records,
		"removed", result.Removed,
		"duration", result.Duration,
	)

	return result, errs.ToError()
}

func (ix *Indexer) run(ctx context.Context, files []string, result *Result, errs *declErrors.ErrorList) error {
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := ix.indexFile(ctx, file)
		switch {
		case err == nil:
			result.Parsed++
			result.Records += n
		case isStoreError(err):
			return err
		default:
			result.Failed++
			errs.Append(err, file)
			ix.logger.WarnContext(logging.WithSource(ctx, file), "file skipped", "error", err)
		}

		if ix.progress != nil {
			ix.progress.Update(int64(i + 1))
		}
	}
	return nil
}

// IndexFile parses a single file and replaces its records. It returns the
// number of records written.
func (ix *Indexer) IndexFile(ctx context.Context, file string) (int, error) {
	return ix.indexFile(ctx, file)
}

func (ix *Indexer) indexFile(ctx context.Context, file string) (int, error) {
	nodes, err := ix.parser.ParseFile(file)
	if err != nil {
		return 0, err
	}

	records := make([]*Record, 0, len(nodes))
	for _, node := range nodes {
		rec, err := NewRecord(file, node)
		if err != nil {
			return 0, err
		}
		records = append(records, rec)
	}

	if err := ix.store.ReplaceFile(ctx, file, records); err != nil {
		return 0, err
	}

	ix.logger.DebugContext(logging.WithSource(ctx, file), "file indexed", "records", len(records))
	return len(records), nil
}

// prune deletes records of files under dir that were not found by this run.
func (ix *Indexer) prune(ctx context.Context, dir string, files []string, result *Result) error {
	known, err := ix.store.Files(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f] = true
	}

	for _, f := range known {
		if seen[f] || !within(dir, f) {
			continue
		}
		n, err := ix.store.DeleteFile(ctx, f)
		if err != nil {
			return err
		}
		result.Removed += n
		ix.logger.DebugContext(logging.WithSource(ctx, f), "stale records removed", "records", n)
	}
	return nil
}

// collect returns the sorted list of files under dir to index.
func (ix *Indexer) collect(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && !ix.includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !ix.Matches(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path has one of the indexed extensions.
func (ix *Indexer) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range ix.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isStoreError(err error) bool {
	var se *StorageError
	return errors.As(err, &se) || errors.Is(err, ErrClosed)
}

func within(dir, file string) bool {
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
