// Package index owns the on-disk documentation index consumed by the
// search tool.
//
// The index itself is built by a separate step and opened here read-only.
// This package defines the contract between the two: the stored field
// names, the bleve mapping a builder must use, the closed set of
// documentation packages, and the process-wide handle cache.
//
// # Documents
//
// Every indexed page carries the stored fields content, path, package,
// title, source_repo and docs_path. All of them are optional in storage.
// [DocumentFromFields] turns a hit's stored fields into a [Document],
// treating absent fields as empty strings and defaulting docs_path to
// [DefaultDocsPath].
//
// # Handle cache
//
// [Cache] opens the index lazily on the first call to [Cache.Ensure] and
// hands the same [Handle] to every later call:
//
//	cache := index.NewCache("src/index", logger)
//	defer cache.Close()
//
//	h, err := cache.Ensure()
//	if errors.Is(err, index.ErrIndexNotFound) {
//	    // run the index build step first
//	}
//
// The handle is never refreshed. If the directory changes after the first
// load the process keeps serving the snapshot it opened until restart.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Concurrent first calls open the index
// exactly once; a failed attempt is not remembered, so a later call can
// succeed once the index has been built.
package index
