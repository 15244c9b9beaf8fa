package searxng

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bububa/vexa/tools/websearch"
)

type Category = string

const (
	GeneralCategory     Category = "general"
	NewsCategory        Category = "news"
	SocialMediaCategory Category = "social_media"
)

const DefaultEngines = "bing,duckduckgo,google,startpage,yandex"

// ErrNoBaseURL searxng needs the address of an instance
var ErrNoBaseURL = errors.New("searxng base url is required")

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	// URL The URL of the search result
	URL string `json:"url"`
	// Title The title of the search result
	Title string `json:"title"`
	// Content The content snippet of the search result
	Content string `json:"content,omitempty"`
	// PublishedDate publication date when the engine reports one
	PublishedDate string `json:"publishedDate,omitempty"`
}

// SearchResponse represents the entire response from the search instance
type SearchResponse struct {
	Query           string             `json:"query"`
	NumberOfResults int                `json:"number_of_results"`
	Results         []SearchResultItem `json:"results"`
}

// Searxng is a web search backend querying a SearxNG instance over its JSON API
type Searxng struct {
	baseURL    string
	language   string
	category   Category
	engines    string
	httpClient *http.Client
}

var _ websearch.Backend = (*Searxng)(nil)

// New returns a Searxng backend; timeout applies when no client is given
func New(timeout time.Duration, opts ...Option) (*Searxng, error) {
	ret := new(Searxng)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.baseURL == "" {
		return nil, ErrNoBaseURL
	}
	ret.baseURL = strings.TrimRight(ret.baseURL, "/")
	if ret.category == "" {
		ret.category = GeneralCategory
	}
	if ret.engines == "" {
		ret.engines = DefaultEngines
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: timeout}
	}
	return ret, nil
}

func (t *Searxng) Name() string {
	return "searxng"
}

// Search queries the instance and drops results without a title or URL
func (t *Searxng) Search(ctx context.Context, query string, limit int) ([]websearch.Result, error) {
	items, err := t.fetchSearchResults(ctx, query)
	if err != nil {
		return nil, err
	}
	results := make([]websearch.Result, 0, len(items))
	for _, item := range items {
		if item.URL == "" || item.Title == "" {
			continue
		}
		snippet := item.Content
		if item.PublishedDate != "" {
			snippet = strings.TrimSpace(fmt.Sprintf("(%s) %s", item.PublishedDate, snippet))
		}
		results = append(results, websearch.Result{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: snippet,
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

// fetchSearchResults queries the search instance and returns the parsed search response
func (t *Searxng) fetchSearchResults(ctx context.Context, query string) ([]SearchResultItem, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	values.Set("engines", t.engines)
	values.Set("categories", t.category)
	if t.language != "" {
		values.Set("language", t.language)
	}
	searchURL := fmt.Sprintf("%s/search?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying searxng: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from searxng: %d", httpResp.StatusCode)
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&searchResponse); err != nil {
		return nil, err
	}
	return searchResponse.Results, nil
}
