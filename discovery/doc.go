// Package discovery is the entry point of the documentation search tool.
//
// It validates a request, makes sure the shared index handle is loaded,
// builds and runs the query, and turns the hits into display results.
//
// # Basic Usage
//
//	cache := index.NewCache("src/index", logger)
//	disc, err := discovery.New(discovery.Options{Cache: cache, Logger: logger})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text := disc.Search(ctx, discovery.Request{
//	    Query:         "lock file",
//	    PackageFilter: index.PackageUV,
//	    TopN:          3,
//	})
//
// # Errors
//
// Search always returns text. Find is the typed core underneath it and
// reports one of three error kinds:
//   - *UserInputError: blank query, unknown package, top_n outside 1-10
//   - *index.ConfigurationError: the index directory does not exist
//   - *SearchExecutionError: the index could not be opened or the query
//     could not be parsed or run
//
// Search renders user input errors verbatim and everything else as
// "Search failed: <message>". It also recovers panics from the engine.
// Results are never partial: a call either succeeds or fails as a whole.
//
// # Thread Safety
//
// All Discovery methods are safe for concurrent use.
package discovery
