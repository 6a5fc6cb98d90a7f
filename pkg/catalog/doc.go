// Package catalog records parsed declarations in a queryable store.
//
// An Indexer walks a source tree, parses every matching file, and replaces
// that file's records in a Store. A file that fails to parse keeps the
// records from its last successful run, and records of files that have
// disappeared are removed.
//
// # Stores
//
// Three backends implement Store:
//
//	memory   in-process maps, lost on exit
//	sqlite   modernc.org/sqlite, pure Go
//	sqlite3  github.com/mattn/go-sqlite3, requires cgo
//
// Open selects one from config.CatalogConfig:
//
//	store, err := catalog.Open(cfg.Catalog, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// # Indexing
//
//	ix := catalog.NewIndexer(p, store).
//	    WithExtensions(cfg.Watch.Extensions).
//	    WithRecorder(collector)
//	result, err := ix.Index(ctx, "src")
//
// Parse failures are returned as a *errors.ErrorList together with the
// result. Storage failures abort the run.
//
// # Querying
//
//	records, err := store.List(ctx, &catalog.Query{Kind: "trait", Name: "Shape"})
//
// Each Record carries the YAML export of its declaration and a SHA-256 of
// that document, so unchanged declarations hash identically across runs.
package catalog
