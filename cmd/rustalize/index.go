package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/catalog"
	"mercator-hq/rustalize/pkg/catalog/gitsource"
	"mercator-hq/rustalize/pkg/catalog/schedule"
	"mercator-hq/rustalize/pkg/cli"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// scheduleFromConfig is the value of a bare --schedule flag.
const scheduleFromConfig = "config"

var indexFlags struct {
	dir      string
	git      string
	branch   string
	schedule string
	progress bool
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Record declarations in the catalog",
	Long: `Parse every declaration file under a directory and record the results
in the catalog database.

Files that fail to parse keep their previous records. Records of files that
no longer exist are removed.

With --git (or catalog.git.repository) the sources come from a Git
repository. It is cloned to catalog.git.local_path on first use and pulled
before every run; --dir then selects a directory inside the repository.

With --schedule the command indexes once, then re-indexes on the given cron
schedule until interrupted.

Examples:
  # Index once
  rustalize index --dir src/

  # Re-index every 15 minutes
  rustalize index --dir src/ --schedule "*/15 * * * *"

  # Re-index on catalog.schedule from the config file
  rustalize index --dir src/ --schedule

  # Follow a remote repository
  rustalize index --git https://github.com/acme/shapes.git --branch main --dir src`,
	RunE: indexDeclarations,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVarP(&indexFlags.dir, "dir", "d", "", "directory of declaration files (inside the repository with --git)")
	indexCmd.Flags().StringVar(&indexFlags.git, "git", "", "index a Git repository (default: catalog.git.repository)")
	indexCmd.Flags().StringVar(&indexFlags.branch, "branch", "", "Git branch to check out (default: catalog.git.branch)")
	indexCmd.Flags().StringVar(&indexFlags.schedule, "schedule", "", "cron schedule for periodic re-indexing (bare flag: catalog.schedule)")
	indexCmd.Flags().Lookup("schedule").NoOptDefVal = scheduleFromConfig
	indexCmd.Flags().BoolVar(&indexFlags.progress, "progress", true, "show a progress bar when stderr is a terminal")
}

func indexDeclarations(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	gitCfg := e.cfg.Catalog.Git
	if indexFlags.git != "" {
		gitCfg.Repository = indexFlags.git
	}
	if indexFlags.branch != "" {
		gitCfg.Branch = indexFlags.branch
	}
	if indexFlags.dir == "" && gitCfg.Repository == "" {
		return cli.NewCommandError("index", fmt.Errorf("either --dir or --git must be specified"))
	}

	store, err := e.openCatalog()
	if err != nil {
		return cli.NewCommandError("index", err)
	}
	defer store.Close()

	collector := e.newCollector("")
	p := e.newParser()
	ix := e.newIndexer(p, store)
	if collector != nil {
		p.WithObserver(collector)
		ix.WithRecorder(collector)
	}
	if indexFlags.progress {
		ix.WithProgress(cli.NewTerminalProgress(asFile(e.errOut)))
	}

	var runner schedule.Indexer = ix
	dir := indexFlags.dir
	if gitCfg.Repository != "" {
		gitCfg.Path = filepath.Join(gitCfg.Path, indexFlags.dir)
		repo, err := gitsource.NewRepository(gitCfg)
		if err != nil {
			return cli.NewCommandError("index", err)
		}
		repo.WithLogger(e.logger)
		runner = gitsource.NewSyncingIndexer(repo, ix)
		dir = repo.SourceDir()
	}

	result, err := runner.Index(e.ctx, dir)
	reportErr := reportIndex(e.out, result, err)

	sched := indexFlags.schedule
	if sched == scheduleFromConfig {
		sched = e.cfg.Catalog.Schedule
	}
	if sched == "" || cli.ExitCode(reportErr) == cli.ExitError {
		return reportErr
	}

	s := schedule.NewScheduler(runner, dir, sched).WithLogger(e.logger)
	if err := s.Start(e.ctx); err != nil {
		return cli.NewCommandError("index", err)
	}
	if next := s.NextRun(); next != nil {
		fmt.Fprintf(e.out, "Next run: %s\n", next.Format("2006-01-02 15:04:05"))
	}

	<-e.ctx.Done()
	s.Stop()
	return nil
}

// reportIndex prints the summary of one run and maps its error.
func reportIndex(w io.Writer, result *catalog.Result, err error) error {
	var list *declErrors.ErrorList
	if err != nil && !errors.As(err, &list) {
		return cli.NewCommandError("index", err)
	}

	fmt.Fprintf(w, "Indexed %d file(s): %d record(s), %d failed, %d removed in %s\n",
		result.Files, result.Records, result.Failed, result.Removed, result.Duration.Round(time.Millisecond))

	if list != nil {
		for _, e := range list.Errors {
			fmt.Fprintf(w, "✗ %s: %s [%s]\n", e.Location.File, e.Message, e.Type)
		}
		return cli.NewFindingsError("index", fmt.Errorf("%d file(s) failed to parse", result.Failed))
	}
	return nil
}
