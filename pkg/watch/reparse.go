package watch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
	"mercator-hq/rustalize/pkg/decl/parser"
	"mercator-hq/rustalize/pkg/decl/render"
	"mercator-hq/rustalize/pkg/telemetry/logging"
)

// ReparseRecorder counts reparse outcomes per file.
type ReparseRecorder interface {
	RecordReparse(file string, ok bool)
}

// Reparser is a Handler body that re-parses changed files, prints their
// trees, and keeps an optional catalog in sync.
type Reparser struct {
	parser   *parser.Parser
	renderer *render.Renderer
	out      io.Writer
	indexer  *catalog.Indexer
	store    catalog.Store
	recorder ReparseRecorder
	logger   *logging.Logger

	// last holds the outcome of each tracked file's most recent parse.
	mu   sync.Mutex
	last map[string]error
}

// NewReparser creates a reparser that prints trees to out. A nil out
// disables printing.
func NewReparser(p *parser.Parser, out io.Writer) *Reparser {
	return &Reparser{
		parser:   p,
		renderer: render.NewRenderer(),
		out:      out,
		logger:   logging.Discard(),
		last:     make(map[string]error),
	}
}

// WithRenderer sets the renderer used for printed trees.
func (r *Reparser) WithRenderer(renderer *render.Renderer) *Reparser {
	if renderer != nil {
		r.renderer = renderer
	}
	return r
}

// WithCatalog writes successful parses through indexer and removes records
// of deleted files from store.
func (r *Reparser) WithCatalog(indexer *catalog.Indexer, store catalog.Store) *Reparser {
	r.indexer = indexer
	r.store = store
	return r
}

// WithRecorder sets the recorder notified of every reparse.
func (r *Reparser) WithRecorder(rec ReparseRecorder) *Reparser {
	r.recorder = rec
	return r
}

// WithLogger sets the logger.
func (r *Reparser) WithLogger(logger *logging.Logger) *Reparser {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Handle processes one debounced batch. Each batch gets its own parse ID.
func (r *Reparser) Handle(ctx context.Context, events []Event) {
	ctx = logging.WithParseID(ctx, logging.NewParseID())
	for _, ev := range events {
		if ctx.Err() != nil {
			return
		}
		r.handle(logging.WithSource(ctx, ev.Path), ev)
	}
}

func (r *Reparser) handle(ctx context.Context, ev Event) {
	if ev.Op.Removed() {
		r.remove(ctx, ev.Path)
		return
	}

	nodes, err := r.parse(ctx, ev.Path)
	r.setLast(ev.Path, err)
	if r.recorder != nil {
		r.recorder.RecordReparse(ev.Path, err == nil)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "reparse failed",
			"error_type", declErrors.TypeOf(err),
			"error", err,
		)
		r.printf("✗ %s\n%v\n", ev.Path, err)
		return
	}

	r.logger.InfoContext(ctx, "reparsed", "declarations", len(nodes))
	r.printf("✓ %s\n", ev.Path)
	for _, node := range nodes {
		if r.out == nil {
			break
		}
		if err := r.renderer.Render(r.out, node); err != nil {
			r.logger.ErrorContext(ctx, "render failed", "error", err)
			return
		}
	}
}

// parse parses path, through the indexer when a catalog is attached.
func (r *Reparser) parse(ctx context.Context, path string) ([]*ast.Node, error) {
	nodes, err := r.parser.ParseFile(path)
	if err != nil || r.indexer == nil {
		return nodes, err
	}
	if _, err := r.indexer.IndexFile(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to update catalog: %w", err)
	}
	return nodes, nil
}

func (r *Reparser) remove(ctx context.Context, path string) {
	r.forget(path)
	r.printf("- %s\n", path)

	if r.store == nil {
		return
	}
	n, err := r.store.DeleteFile(ctx, path)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to remove catalog records", "error", err)
		return
	}
	r.logger.InfoContext(ctx, "file removed", "records", n)
}

func (r *Reparser) setLast(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last[path] = err
}

func (r *Reparser) forget(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.last, path)
}

// Failing returns the files whose most recent parse failed, with the error.
func (r *Reparser) Failing() map[string]error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]error)
	for k, v := range r.last {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Parsed returns how many tracked files parsed cleanly on their most recent
// change.
func (r *Reparser) Parsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, err := range r.last {
		if err == nil {
			n++
		}
	}
	return n
}

func (r *Reparser) printf(format string, args ...any) {
	if r.out != nil {
		fmt.Fprintf(r.out, format, args...)
	}
}
