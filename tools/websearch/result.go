package websearch

import (
	"context"
	"fmt"
	"strings"
)

// Result a single search hit
type Result struct {
	// Title The title of the search result
	Title string `json:"title"`
	// URL The URL of the search result
	URL string `json:"url"`
	// Snippet short description or content excerpt
	Snippet string `json:"snippet,omitempty"`
}

// Backend fetches search results from a provider
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Format renders results as the numbered text block handed to the engine
func Format(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Search results for '%s':\n", query)
	for idx, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", idx+1, r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
