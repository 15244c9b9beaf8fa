package websearch

import "time"

type Option func(*Tool)

// WithMaxResults caps how many results are shown to the engine
func WithMaxResults(n int) Option {
	return func(t *Tool) {
		t.maxResults = n
	}
}

// WithCache enables an LRU cache of size entries, each valid for ttl
func WithCache(size int, ttl time.Duration) Option {
	return func(t *Tool) {
		t.cacheSize = size
		t.cacheTTL = ttl
	}
}
