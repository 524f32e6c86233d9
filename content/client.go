package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nordbloc/siteloc"
	"github.com/nordbloc/siteloc/seo"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ClientConfig holds configuration for the content API client.
type ClientConfig struct {
	APIBaseURL           string // content API base, e.g. https://api.example.com/v1
	SiteBaseURL          string // published site base, e.g. https://www.example.com
	Token                string // API bearer token
	Timeout              int    // per-request timeout in seconds
	MaxRetries           int
	MaxRequestsPerSecond int
}

// Client is the resty-backed content API client.
type Client struct {
	api  *resty.Client
	site *resty.Client
	rl   ratelimit.Limiter
	cfg  ClientConfig
}

// NewClient creates a content API client.
func NewClient(cfg ClientConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	api := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		api.SetAuthToken(cfg.Token)
	}

	site := resty.New().
		SetBaseURL(strings.TrimRight(cfg.SiteBaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &Client{
		api:  api,
		site: site,
		rl:   ratelimit.New(rps),
		cfg:  cfg,
	}
}

// Pages lists the site's pages from the content API.
func (c *Client) Pages(ctx context.Context) ([]Page, error) {
	body, err := c.getJSON(ctx, "/pages")
	if err != nil {
		return nil, err
	}

	var listing struct {
		Pages []Page `json:"pages"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decoding page listing: %w", err)
	}
	log.Debugf("Listed %d pages", len(listing.Pages))
	return listing.Pages, nil
}

// Tree returns the structured content tree for a page/locale pair.
// A 404 means the locale has no content for this page and returns (nil, nil).
func (c *Client) Tree(ctx context.Context, pageID, locale string) (*siteloc.ContentTree, error) {
	path := fmt.Sprintf("/pages/%s/content?locale=%s", pageID, siteloc.NormalizeLocale(locale))
	body, err := c.getJSON(ctx, path)
	if err != nil {
		if absent(err) {
			log.WithFields(log.Fields{"page": pageID, "locale": locale}).
				Debug("No content tree for locale")
			return nil, nil
		}
		return nil, err
	}

	var tree siteloc.ContentTree
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decoding content tree for page %s: %w", pageID, err)
	}
	return &tree, nil
}

// Metadata returns the SEO fields for a page/locale pair, (nil, nil) when
// none are defined.
func (c *Client) Metadata(ctx context.Context, pageID, locale string) (*seo.Meta, error) {
	path := fmt.Sprintf("/pages/%s/meta?locale=%s", pageID, siteloc.NormalizeLocale(locale))
	body, err := c.getJSON(ctx, path)
	if err != nil {
		if absent(err) {
			return nil, nil
		}
		return nil, err
	}

	var meta seo.Meta
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("decoding metadata for page %s: %w", pageID, err)
	}
	return &meta, nil
}

// RenderedHTML fetches the rendered default-locale document for a slug.
func (c *Client) RenderedHTML(ctx context.Context, slug string) (string, error) {
	c.rl.Take()

	path := "/" + strings.TrimLeft(slug, "/")
	resp, err := c.site.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", &siteloc.FetchError{
			URL:       c.cfg.SiteBaseURL + path,
			Message:   "fetching rendered document",
			Cause:     err,
			Retryable: true,
		}
	}
	if resp.IsError() {
		fe := &siteloc.FetchError{
			URL:        c.cfg.SiteBaseURL + path,
			StatusCode: resp.StatusCode(),
			Message:    "rendered document fetch failed",
			Retryable:  resp.StatusCode() >= 500,
		}
		if fe.StatusCode == http.StatusNotFound {
			fe.Cause = siteloc.ErrPageNotFound
		}
		return "", fe
	}
	return resp.String(), nil
}

// getJSON performs a rate-limited GET against the content API.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	c.rl.Take()

	resp, err := c.api.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, &siteloc.FetchError{
			URL:       c.cfg.APIBaseURL + path,
			Message:   "content API request failed",
			Cause:     err,
			Retryable: true,
		}
	}
	if resp.IsError() {
		fe := &siteloc.FetchError{
			URL:        c.cfg.APIBaseURL + path,
			StatusCode: resp.StatusCode(),
			Message:    "content API error",
			Retryable:  resp.StatusCode() >= 500,
		}
		if fe.StatusCode == http.StatusNotFound {
			fe.Cause = siteloc.ErrPageNotFound
		}
		return nil, fe
	}
	return resp.Bytes(), nil
}

// absent reports whether an error is a plain "not found" from the API.
func absent(err error) bool {
	return errors.Is(err, siteloc.ErrPageNotFound)
}

// Verify Client implements Supplier
var _ Supplier = (*Client)(nil)
