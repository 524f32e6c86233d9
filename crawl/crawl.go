// Package crawl discovers a site's pages by following internal links from
// the home page. It is the fallback page source when the content API's
// listing is unavailable.
//
// All traversal state lives in an explicit Frontier owned by one crawl
// invocation. There is no process-wide visited set: two crawls never share
// state, and a crawl can be thrown away mid-flight without cleanup.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Frontier tracks the pages one crawl has visited and still has pending.
type Frontier struct {
	visited map[string]bool
	pending []string
}

// NewFrontier creates a frontier seeded with the given paths.
func NewFrontier(seeds ...string) *Frontier {
	f := &Frontier{visited: make(map[string]bool)}
	for _, s := range seeds {
		f.Enqueue(s)
	}
	return f
}

// Enqueue adds a path unless it was already visited or enqueued.
func (f *Frontier) Enqueue(path string) {
	if f.visited[path] {
		return
	}
	f.visited[path] = true
	f.pending = append(f.pending, path)
}

// Next pops the next pending path. ok is false when the frontier is drained.
func (f *Frontier) Next() (string, bool) {
	if len(f.pending) == 0 {
		return "", false
	}
	path := f.pending[0]
	f.pending = f.pending[1:]
	return path, true
}

// Visited returns every path ever enqueued, in no particular order.
func (f *Frontier) Visited() []string {
	out := make([]string, 0, len(f.visited))
	for path := range f.visited {
		out = append(out, path)
	}
	return out
}

// Crawler walks the published site and collects page paths.
type Crawler struct {
	client   *resty.Client
	baseURL  string
	maxPages int
}

// CrawlerConfig holds configuration for a crawler.
type CrawlerConfig struct {
	BaseURL  string // published site base, e.g. https://www.example.com
	Timeout  int    // per-request timeout in seconds
	MaxPages int    // hard page limit per crawl (default 500)
}

// NewCrawler creates a crawler for one site.
func NewCrawler(cfg CrawlerConfig) *Crawler {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 500
	}
	return &Crawler{
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(timeout).
			SetRetryCount(2),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		maxPages: maxPages,
	}
}

// Discover crawls the site starting at "/" and returns every same-host page
// path found. Fetch failures on individual pages are logged and skipped;
// the crawl keeps going.
func (c *Crawler) Discover(ctx context.Context) ([]string, error) {
	frontier := NewFrontier("/")
	var pages []string

	for len(pages) < c.maxPages {
		path, ok := frontier.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		resp, err := c.client.R().SetContext(ctx).Get(path)
		if err != nil || resp.IsError() {
			log.WithField("path", path).Warn("Skipping unreachable page")
			continue
		}
		pages = append(pages, path)

		for _, link := range c.pageLinks(resp.String()) {
			frontier.Enqueue(link)
		}
	}

	log.Infof("Crawl discovered %d pages", len(pages))
	return pages, nil
}

// pageLinks extracts the same-host page paths a document links to. Asset
// links and fragments are dropped.
func (c *Crawler) pageLinks(doc string) []string {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil
	}

	var links []string
	parsed.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if path, ok := c.internalPath(href); ok {
			links = append(links, path)
		}
	})
	return links
}

// internalPath normalizes an href to a crawlable same-host path.
func (c *Crawler) internalPath(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		base, err := url.Parse(c.baseURL)
		if err != nil || u.Host != base.Host {
			return "", false
		}
	}

	path := u.Path
	if path == "" {
		return "", false
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	// Skip direct asset links
	for _, ext := range []string{".css", ".js", ".png", ".jpg", ".jpeg", ".svg", ".gif", ".webp", ".pdf", ".ico", ".xml", ".txt"} {
		if strings.HasSuffix(strings.ToLower(path), ext) {
			return "", false
		}
	}
	return path, true
}
