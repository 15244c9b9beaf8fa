package toolset

import (
	"errors"
	"fmt"
	"time"

	"github.com/bububa/vexa/tools"
	"github.com/bububa/vexa/tools/calculator"
	"github.com/bububa/vexa/tools/clock"
	"github.com/bububa/vexa/tools/fileops"
	"github.com/bububa/vexa/tools/searxng"
	"github.com/bububa/vexa/tools/weather"
	"github.com/bububa/vexa/tools/webscraper"
	"github.com/bububa/vexa/tools/websearch"
)

const (
	WebSearch  = "web_search"
	Calculator = "calculator"
	DateTime   = "datetime"
	FileOps    = "file_ops"
	Weather    = "weather"
	WebFetch   = "web_fetch"
)

const (
	BackendDuckDuckGo = "duckduckgo"
	BackendSearxng    = "searxng"
)

// ErrUnknownTool the settings name a tool this build does not provide
var ErrUnknownTool = errors.New("unknown tool")

// DefaultNames is the tool set an agent gets when nothing is configured
func DefaultNames() []string {
	return []string{WebSearch, Calculator, DateTime, FileOps}
}

// AllNames is every tool this build provides
func AllNames() []string {
	return []string{WebSearch, Calculator, DateTime, Weather, FileOps, WebFetch}
}

// Settings selects and configures tools
type Settings struct {
	// Enabled tool names in registration order; empty means DefaultNames
	Enabled []string
	// SearchBackend duckduckgo or searxng
	SearchBackend string
	SearxngURL    string
	SearchResults int
	SearchTimeout time.Duration
	// SearchCacheSize zero disables the search cache
	SearchCacheSize int
	SearchCacheTTL  time.Duration
	// FileRoot sandbox of file_ops, the working directory when empty
	FileRoot string
	// FetchTimeout web_fetch request timeout
	FetchTimeout time.Duration
}

// Build registers the enabled tools in a new registry
func Build(s Settings) (*tools.Registry, error) {
	names := s.Enabled
	if len(names) == 0 {
		names = DefaultNames()
	}
	registry, err := tools.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		tool, err := newTool(name, s)
		if err != nil {
			return nil, err
		}
		if err := registry.RegisterTool(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Default builds the default tool set with default settings
func Default() (*tools.Registry, error) {
	return Build(Settings{})
}

// All builds every tool with default settings
func All() (*tools.Registry, error) {
	return Build(Settings{Enabled: AllNames()})
}

func newTool(name string, s Settings) (tools.Tool, error) {
	switch name {
	case WebSearch:
		return newWebSearch(s)
	case Calculator:
		return calculator.New(), nil
	case DateTime:
		return clock.New(nil), nil
	case FileOps:
		var opts []fileops.Option
		if s.FileRoot != "" {
			opts = append(opts, fileops.WithRoot(s.FileRoot))
		}
		return fileops.New(opts)
	case Weather:
		return weather.New(WebSearch), nil
	case WebFetch:
		var opts []webscraper.Option
		if s.FetchTimeout > 0 {
			opts = append(opts, webscraper.WithTimeout(s.FetchTimeout))
		}
		return webscraper.New(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func newWebSearch(s Settings) (*websearch.Tool, error) {
	timeout := s.SearchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	var backend websearch.Backend
	switch s.SearchBackend {
	case "", BackendDuckDuckGo:
		backend = websearch.NewDuckDuckGo(timeout)
	case BackendSearxng:
		sx, err := searxng.New(timeout, searxng.WithBaseURL(s.SearxngURL))
		if err != nil {
			return nil, err
		}
		backend = sx
	default:
		return nil, fmt.Errorf("unknown search backend: %s", s.SearchBackend)
	}
	opts := []websearch.Option{websearch.WithMaxResults(s.SearchResults)}
	if s.SearchCacheSize > 0 {
		opts = append(opts, websearch.WithCache(s.SearchCacheSize, s.SearchCacheTTL))
	}
	return websearch.New(backend, opts)
}
