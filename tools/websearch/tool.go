package websearch

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "web_search"
	defaultDescription = "Useful for searching the web for current information, news, facts, and answers. Input should be a search query string."
	// DefaultMaxResults results shown when no limit is configured
	DefaultMaxResults = 5
)

// ErrEmptyQuery the search query was blank
var ErrEmptyQuery = errors.New("empty search query")

type cacheEntry struct {
	results  []Result
	storedAt time.Time
}

// Tool searches the web through a Backend
type Tool struct {
	tools.Config
	backend    Backend
	maxResults int
	cacheSize  int
	cacheTTL   time.Duration
	cache      *lru.Cache[string, cacheEntry]
	now        func() time.Time
}

var _ tools.Tool = (*Tool)(nil)

func New(backend Backend, opts []Option, toolOpts ...tools.Option) (*Tool, error) {
	ret := &Tool{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.maxResults <= 0 {
		ret.maxResults = DefaultMaxResults
	}
	if ret.cacheSize > 0 {
		cache, err := lru.New[string, cacheEntry](ret.cacheSize)
		if err != nil {
			return nil, err
		}
		ret.cache = cache
	}
	tools.Apply(&ret.Config, defaultName, defaultDescription, toolOpts...)
	return ret, nil
}

// Backend returns the search provider
func (t *Tool) Backend() Backend {
	return t.backend
}

func (t *Tool) Invoke(ctx context.Context, argument string) (string, error) {
	query := strings.Trim(strings.TrimSpace(argument), "\"'")
	results, err := t.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return Format(query, results), nil
}

// Search returns at most maxResults results, consulting the cache first
func (t *Tool) Search(ctx context.Context, query string) ([]Result, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	key := t.cacheKey(query)
	if t.cache != nil {
		if entry, ok := t.cache.Get(key); ok {
			if t.cacheTTL <= 0 || t.now().Sub(entry.storedAt) < t.cacheTTL {
				return entry.results, nil
			}
			t.cache.Remove(key)
		}
	}
	results, err := t.backend.Search(ctx, query, t.maxResults)
	if err != nil {
		return nil, err
	}
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	if t.cache != nil {
		t.cache.Add(key, cacheEntry{results: results, storedAt: t.now()})
	}
	return results, nil
}

func (t *Tool) cacheKey(query string) string {
	return t.backend.Name() + "|" + strconv.Itoa(t.maxResults) + "|" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}
