package webscraper

import (
	"net/http"
	"time"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAccept    = "text/html,application/xhtml+xml,application/xml;"
)

type Option func(*Webscraper)

func WithUserAgent(ua string) Option {
	return func(c *Webscraper) {
		c.userAgent = ua
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Webscraper) {
		c.timeout = timeout
	}
}

// WithMaxContentLength bytes of the response body read at most
func WithMaxContentLength(l int64) Option {
	return func(c *Webscraper) {
		c.maxContentLength = l
	}
}

// WithMaxOutputChars truncates the markdown handed to the engine
func WithMaxOutputChars(n int) Option {
	return func(c *Webscraper) {
		c.maxOutputChars = n
	}
}

func WithIncludeLinks(include bool) Option {
	return func(c *Webscraper) {
		c.includeLinks = include
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Webscraper) {
		c.httpClient = clt
	}
}
