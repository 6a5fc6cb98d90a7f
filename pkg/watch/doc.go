// Package watch re-parses declaration sources when they change on disk.
//
// A Watcher wraps fsnotify, watching a file or a directory tree, and
// delivers debounced batches of Events to a Handler. Rapid saves of the
// same file collapse into one event carrying the last operation seen.
//
//	w, err := watch.New(watch.FromConfig(cfg.Watch, "src"), logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	r := watch.NewReparser(p, os.Stdout).WithCatalog(indexer, store)
//	return w.Watch(ctx, r.Handle)
//
// Reparser prints the tree of every file that parses, reports the error of
// every file that does not, and keeps the catalog in sync when one is
// attached.
package watch
