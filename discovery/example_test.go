package discovery_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonwraymond/pydepdocs/discovery"
	"github.com/jonwraymond/pydepdocs/index"
)

func ExampleDiscovery_Search_emptyQuery() {
	disc, err := discovery.New(discovery.Options{
		Cache: index.NewCache(filepath.Join(os.TempDir(), "no-such-index"), nil),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(disc.Search(context.Background(), discovery.Request{Query: "   "}))
	// Output:
	// Search query cannot be empty
}

func ExampleDiscovery_Search_missingIndex() {
	cache := index.NewCache("/nonexistent/pydepdocs/index", nil)
	disc, _ := discovery.New(discovery.Options{Cache: cache})

	fmt.Println(disc.Search(context.Background(), discovery.Request{Query: "virtual environments"}))
	// Output:
	// Search failed: search index not found at /nonexistent/pydepdocs/index. Run the index build step first to create the index
}
