// Package gitsource keeps a local clone of a Git repository up to date so
// its declaration files can be indexed into the catalog.
//
// # Basic Usage
//
//	repo, err := gitsource.NewRepository(cfg.Catalog.Git)
//	if err != nil {
//	    return err
//	}
//
//	// Clone on first use, pull afterwards
//	result, err := repo.Sync(ctx)
//
//	// Index the checked-out sources
//	res, err := indexer.Index(ctx, repo.SourceDir())
//
// # Scheduled Indexing
//
// SyncingIndexer pulls before every run, so a schedule.Scheduler driving it
// follows the remote branch:
//
//	ix := gitsource.NewSyncingIndexer(repo, indexer)
//	s := schedule.NewScheduler(ix, repo.SourceDir(), "*/15 * * * *")
//
// # Authentication
//
// Three auth types are supported: "none" for public repositories, "token"
// for HTTPS personal access tokens, and "ssh" for private key files. SSH key
// files must not be readable by group or others.
package gitsource
