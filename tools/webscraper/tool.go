package webscraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/bububa/vexa/components/tokenizer"
	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "web_fetch"
	defaultDescription = "Fetch a webpage and return its main content as Markdown. Input should be a full http or https URL."
)

// ErrInvalidURL the argument is not an absolute http(s) URL
var ErrInvalidURL = errors.New("invalid url")

var (
	blankLinesRe = regexp.MustCompile(`\r?\n{2,}`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// Metadata about a scraped webpage
type Metadata struct {
	// Title is the title of the webpage.
	Title string `json:"title,omitempty"`
	// Author is the author of the webpage content.
	Author string `json:"author,omitempty"`
	// Description is the meta description of the webpage.
	Description string `json:"description,omitempty"`
	// SiteName is the name of the website.
	SiteName string `json:"sitename,omitempty"`
	// Domain is the domain name of the website.
	Domain string `json:"domain,omitempty"`
}

// Page scraped content in markdown format plus metadata
type Page struct {
	Content  string
	Metadata Metadata
}

// String renders the page the way the engine sees it
func (p Page) String() string {
	var b strings.Builder
	if p.Metadata.Title != "" {
		fmt.Fprintf(&b, "# %s\n", strings.TrimSpace(p.Metadata.Title))
	}
	fmt.Fprintf(&b, "Source: %s\n", p.Metadata.Domain)
	if p.Metadata.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Metadata.Description)
	}
	b.WriteString("\n")
	b.WriteString(p.Content)
	return strings.TrimRight(b.String(), "\n")
}

type Webscraper struct {
	tools.Config
	userAgent string
	timeout   time.Duration
	// maxContentLength Maximum content length in bytes to process.
	maxContentLength int64
	maxOutputChars   int
	includeLinks     bool
	httpClient       *http.Client
}

var _ tools.Tool = (*Webscraper)(nil)

func New(opts []Option, toolOpts ...tools.Option) *Webscraper {
	ret := new(Webscraper)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout == 0 {
		ret.timeout = 30 * time.Second
	}
	if ret.maxContentLength == 0 {
		ret.maxContentLength = 1_000_000
	}
	if ret.maxOutputChars == 0 {
		ret.maxOutputChars = 4000
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	tools.Apply(&ret.Config, defaultName, defaultDescription, toolOpts...)
	return ret
}

func (t *Webscraper) Invoke(ctx context.Context, argument string) (string, error) {
	page, err := t.Scrape(ctx, strings.Trim(strings.TrimSpace(argument), "\"'<>"))
	if err != nil {
		return "", err
	}
	out := page.String()
	if cut, truncated := tokenizer.CutSentences(out, t.maxOutputChars); truncated {
		out = cut + "\n..."
	}
	return out, nil
}

// Scrape fetches link and converts its main content to markdown
func (t *Webscraper) Scrape(ctx context.Context, link string) (*Page, error) {
	parsedURL, err := url.ParseRequestURI(link)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, link)
	}
	doc, err := t.fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	page := &Page{Metadata: Metadata{Domain: parsedURL.Host}}
	t.extractMetadata(doc, &page.Metadata)
	mainContent := t.extractMainContent(doc)
	markdown, err := htmltomarkdown.ConvertString(
		mainContent,
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return nil, err
	}
	if !t.includeLinks {
		markdown = mdLinkRe.ReplaceAllString(markdown, "$1")
	}
	page.Content = cleanMarkdownContent(markdown)
	return page, nil
}

func (t *Webscraper) fetch(ctx context.Context, link string) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetching %s: status %d", link, httpResp.StatusCode)
	}
	return goquery.NewDocumentFromReader(io.LimitReader(httpResp.Body, t.maxContentLength))
}

func (t *Webscraper) extractMetadata(doc *goquery.Document, meta *Metadata) {
	meta.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	meta.Author, _ = doc.Find("meta[name='author']").Attr("content")
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
}

// extractMainContent picks the first likely content container
func (t *Webscraper) extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer", "noscript", "aside"} {
		doc.Find(tag).Remove()
	}
	contentCandidates := []string{
		"main",
		"#content, #main",
		".content, .main",
		"article",
		"body",
	}
	for _, selector := range contentCandidates {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if txt, err := sel.Html(); err == nil && strings.TrimSpace(txt) != "" {
			return txt
		}
	}
	mainContent, _ := doc.Html()
	return mainContent
}

// cleanMarkdownContent collapses blank lines and trailing whitespace
func cleanMarkdownContent(content string) string {
	content = blankLinesRe.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
