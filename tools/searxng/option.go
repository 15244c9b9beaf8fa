package searxng

import "net/http"

type Option func(*Searxng)

func WithBaseURL(baseURL string) Option {
	return func(c *Searxng) {
		c.baseURL = baseURL
	}
}

func WithLanguage(lang string) Option {
	return func(c *Searxng) {
		c.language = lang
	}
}

func WithCategory(category Category) Option {
	return func(c *Searxng) {
		c.category = category
	}
}

func WithEngines(engines string) Option {
	return func(c *Searxng) {
		c.engines = engines
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Searxng) {
		c.httpClient = clt
	}
}
