package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/telemetry/health"
	"mercator-hq/rustalize/pkg/watch"
)

var watchFlags struct {
	path        string
	color       string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-parse declaration files as they change",
	Long: `Watch a file or directory and re-parse declaration files on change.

Changes are debounced (watch.debounce) and each changed file prints either
its syntax trees or the parse error. When the catalog is enabled, records
are updated in place and removed with their file.

With --metrics-addr (or telemetry.metrics.enabled) the command also serves
Prometheus metrics and the /healthz and /readyz probes. Readiness fails
while any watched file does not parse.

Examples:
  # Watch a source tree
  rustalize watch --path src/

  # Serve metrics and health probes on :9090
  rustalize watch --path src/ --metrics-addr :9090`,
	RunE: watchSources,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.path, "path", "p", "", "file or directory to watch (required)")
	watchCmd.Flags().StringVar(&watchFlags.color, "color", "", "colorize trees: auto, always, never (default: render.color)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health probes on this address")
	_ = watchCmd.MarkFlagRequired("path")
}

func watchSources(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	collector := e.newCollector(watchFlags.metricsAddr)

	p := e.newParser()
	if collector != nil {
		p = p.WithObserver(collector)
	}

	reparser := watch.NewReparser(p, e.out).
		WithRenderer(e.newRenderer(watchFlags.color)).
		WithLogger(e.logger)
	if collector != nil {
		reparser = reparser.WithRecorder(collector)
	}

	var store catalog.Store
	if e.cfg.Catalog.Enabled {
		store, err = e.openCatalog()
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
		reparser = reparser.WithCatalog(e.newIndexer(p, store), store)
	}

	watcher, err := watch.New(watch.FromConfig(e.cfg.Watch, watchFlags.path), e.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	if collector != nil {
		watcher = watcher.WithRecorder(collector)
	}
	defer watcher.Stop()

	if collector != nil {
		server, err := collector.Listen()
		if err != nil {
			return cli.NewCommandError("watch", err)
		}

		checker := health.New(2 * time.Second)
		checker.Register("sources", sourcesProbe(reparser))
		if store != nil {
			checker.Register("catalog", catalogProbe(store))
		}
		health.Mount(server, checker)

		go func() {
			if err := server.Serve(e.ctx); err != nil {
				e.logger.ErrorContext(e.ctx, "metrics server failed", "error", err)
			}
		}()
		fmt.Fprintf(e.errOut, "Serving metrics and health probes on %s\n", server.Addr())
	}

	fmt.Fprintf(e.errOut, "Watching %s (Ctrl+C to stop)\n", watchFlags.path)
	if err := watcher.Watch(e.ctx, reparser.Handle); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// sourcesProbe lists the watched files whose most recent parse failed.
func sourcesProbe(r *watch.Reparser) health.ProbeFunc {
	return func(ctx context.Context) (health.Probe, error) {
		failing := r.Failing()
		files := make([]string, 0, len(failing))
		for file := range failing {
			files = append(files, file)
		}
		sort.Strings(files)
		return health.Probe{
			Summary: fmt.Sprintf("%d file(s) parsed, %d failing", r.Parsed(), len(files)),
			Failing: files,
		}, nil
	}
}

// catalogProbe reports the record count of a reachable catalog.
func catalogProbe(store catalog.Store) health.ProbeFunc {
	return func(ctx context.Context) (health.Probe, error) {
		if err := store.Ping(ctx); err != nil {
			return health.Probe{}, fmt.Errorf("catalog unreachable: %w", err)
		}
		n, err := store.Count(ctx, nil)
		if err != nil {
			return health.Probe{}, fmt.Errorf("failed to count records: %w", err)
		}
		return health.Probe{Summary: fmt.Sprintf("%d record(s)", n)}, nil
	}
}
