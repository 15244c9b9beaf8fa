package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/vexa/tools/websearch"
)

func startSearxngServer(t *testing.T, results []SearchResultItem, seen *url.Values) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{Results: results})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearxngSearchWithCategory(t *testing.T) {
	var seen url.Values
	srv := startSearxngServer(t, []SearchResultItem{{
		URL:     "https://example.com/test-category",
		Title:   "Test Result with Category",
		Content: "This is a test result content with category.",
	}}, &seen)

	backend, err := New(time.Second, WithBaseURL(srv.URL+"/"), WithCategory(NewsCategory), WithLanguage("en"))
	require.NoError(t, err)
	results, err := backend.Search(context.Background(), "test query with category", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, websearch.Result{
		Title:   "Test Result with Category",
		URL:     "https://example.com/test-category",
		Snippet: "This is a test result content with category.",
	}, results[0])

	assert.Equal(t, "test query with category", seen.Get("q"))
	assert.Equal(t, "news", seen.Get("categories"))
	assert.Equal(t, "json", seen.Get("format"))
	assert.Equal(t, "en", seen.Get("language"))
}

func TestSearxngSearchMissingFields(t *testing.T) {
	srv := startSearxngServer(t, []SearchResultItem{
		{Title: "Result Missing Content", URL: "https://example.com/1"},
		{Content: "Result Missing Title", URL: "https://example.com/2"},
		{Title: "Result Missing URL", Content: "Some content"},
		{Title: "Valid Result", Content: "Some content", URL: "https://example.com/5"},
	}, nil)
	backend, err := New(time.Second, WithBaseURL(srv.URL))
	require.NoError(t, err)
	results, err := backend.Search(context.Background(), "query with missing fields", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Result Missing Content", results[0].Title)
	assert.Equal(t, "Valid Result", results[1].Title)
}

func TestSearxngSearchWithPublishedDate(t *testing.T) {
	srv := startSearxngServer(t, []SearchResultItem{
		{Title: "Dated", Content: "Content", URL: "https://example.com/d", PublishedDate: "2022-01-01"},
	}, nil)
	backend, err := New(time.Second, WithBaseURL(srv.URL))
	require.NoError(t, err)
	results, err := backend.Search(context.Background(), "query with dates", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "(2022-01-01) Content", results[0].Snippet)
}

func TestSearxngSearchWithMaxResults(t *testing.T) {
	srv := startSearxngServer(t, []SearchResultItem{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
		{Title: "C", URL: "https://example.com/c"},
	}, nil)
	backend, err := New(time.Second, WithBaseURL(srv.URL))
	require.NoError(t, err)
	results, err := backend.Search(context.Background(), "query with max results", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearxngSearchWithNoResults(t *testing.T) {
	srv := startSearxngServer(t, []SearchResultItem{}, nil)
	backend, err := New(time.Second, WithBaseURL(srv.URL))
	require.NoError(t, err)

	tool, err := websearch.New(backend, nil)
	require.NoError(t, err)
	out, err := tool.Invoke(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Equal(t, "No results found for 'nothing here'.", out)
}

func TestSearxngRequiresBaseURL(t *testing.T) {
	_, err := New(time.Second)
	assert.ErrorIs(t, err, ErrNoBaseURL)
}
