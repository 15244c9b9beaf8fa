package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// DuckDuckGo scrapes the keyless HTML endpoint of DuckDuckGo
type DuckDuckGo struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var _ Backend = (*DuckDuckGo)(nil)

type DuckDuckGoOption func(*DuckDuckGo)

func WithDuckDuckGoURL(u string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.baseURL = u
	}
}

func WithHttpClient(clt *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.httpClient = clt
	}
}

func WithUserAgent(ua string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.userAgent = ua
	}
}

// NewDuckDuckGo returns a DuckDuckGo backend; timeout applies when no client is given
func NewDuckDuckGo(timeout time.Duration, opts ...DuckDuckGoOption) *DuckDuckGo {
	ret := new(DuckDuckGo)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultDuckDuckGoURL
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: timeout}
	}
	return ret
}

func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	values := url.Values{}
	values.Set("q", query)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", d.userAgent)
	httpReq.Header.Set("Accept", "text/html")
	httpResp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying duckduckgo: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from duckduckgo: %d", httpResp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return parseDuckDuckGo(doc, limit), nil
}

func parseDuckDuckGo(doc *goquery.Document, limit int) []Result {
	var results []Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		href = resolveRedirect(href)
		if title == "" || href == "" {
			return true
		}
		results = append(results, Result{
			Title:   title,
			URL:     href,
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").First().Text()), " "),
		})
		return limit <= 0 || len(results) < limit
	})
	return results
}

// resolveRedirect unwraps duckduckgo's /l/?uddg= redirect links
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
