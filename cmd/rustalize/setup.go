package main

import (
	"context"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/config"
	"mercator-hq/rustalize/pkg/decl"
	"mercator-hq/rustalize/pkg/decl/parser"
	"mercator-hq/rustalize/pkg/decl/render"
	"mercator-hq/rustalize/pkg/telemetry/logging"
	"mercator-hq/rustalize/pkg/telemetry/metrics"
)

// env is the per-invocation state shared by commands.
type env struct {
	ctx    context.Context
	cfg    *config.Config
	logger *logging.Logger
	out    io.Writer
	errOut io.Writer
}

// setup loads configuration, builds the logger, and tags the context with
// the command name and a fresh parse ID.
func setup(cmd *cobra.Command) (*env, error) {
	if err := config.ReloadConfig(cfgFile); err != nil {
		return nil, cli.NewCommandError(cmd.Name(), err)
	}
	cfg := config.GetOrDefault()

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewCommandError(cmd.Name(), err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithCommand(ctx, cmd.Name())
	ctx = logging.WithParseID(ctx, logging.NewParseID())

	return &env{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// newParser builds a parser from the parser section.
func (e *env) newParser() *parser.Parser {
	return decl.NewParser(e.cfg.Parser, e.logger.Slog())
}

// newRenderer resolves the color mode ("" uses render.color) for e.out.
func (e *env) newRenderer(mode string) *render.Renderer {
	if mode == "" {
		mode = e.cfg.Render.Color
	}
	return render.NewRenderer().WithColor(cli.ColorEnabled(mode, asFile(e.out)))
}

// newCollector returns a metrics collector when metrics are enabled or a
// listen address is given, and nil otherwise.
func (e *env) newCollector(listenAddr string) *metrics.Collector {
	mcfg := e.cfg.Telemetry.Metrics
	if listenAddr != "" {
		mcfg.ListenAddress = listenAddr
		mcfg.Enabled = true
	}
	if !mcfg.Enabled {
		return nil
	}
	return metrics.NewCollector(&mcfg, prometheus.NewRegistry())
}

// openCatalog opens the configured catalog store.
func (e *env) openCatalog() (catalog.Store, error) {
	return catalog.Open(e.cfg.Catalog, e.logger.Slog())
}

// newIndexer builds an indexer over store with the watch file filters.
func (e *env) newIndexer(p *parser.Parser, store catalog.Store) *catalog.Indexer {
	return catalog.NewIndexer(p, store).
		WithExtensions(e.cfg.Watch.Extensions).
		WithIncludeHidden(e.cfg.Watch.IncludeHidden).
		WithLogger(e.logger)
}

// asFile returns w as a file when it is one, for terminal detection.
func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}
