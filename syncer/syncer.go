// Package syncer orchestrates a full site sync: page discovery, content
// tree fetching, translation-map building, document translation and output
// writing. All failures are page/locale-local; a sync run reports them and
// keeps going.
package syncer

import (
	"context"
	"strings"
	"sync"

	"github.com/nordbloc/siteloc"
	"github.com/nordbloc/siteloc/assets"
	"github.com/nordbloc/siteloc/cache"
	"github.com/nordbloc/siteloc/content"
	"github.com/nordbloc/siteloc/crawl"
	"github.com/nordbloc/siteloc/output"
	"github.com/nordbloc/siteloc/seo"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configures a sync service.
type Options struct {
	SiteBaseURL    string
	DefaultLocale  string
	Locales        []string // target locales, default locale excluded
	Workers        int
	OnlySlug       string // restrict the run to one page slug
}

// Service runs site syncs. Pages run concurrently; within one page the
// builder and translator for each locale run sequentially, since the
// translator needs the completed map.
type Service struct {
	supplier   content.Supplier
	mapCache   cache.MapCache
	sink       output.Sink
	crawler    *crawl.Crawler
	downloader *assets.Downloader
	opts       Options
}

// New creates a sync service. mapCache, crawler and downloader may be nil
// to disable caching, crawl fallback and asset mirroring respectively.
func New(supplier content.Supplier, sink output.Sink, mapCache cache.MapCache, crawler *crawl.Crawler, downloader *assets.Downloader, opts Options) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Service{
		supplier:   supplier,
		mapCache:   mapCache,
		sink:       sink,
		crawler:    crawler,
		downloader: downloader,
		opts:       opts,
	}
}

// PageResult is the outcome of one (page, locale) translation unit.
type PageResult struct {
	Page      string // page slug
	Locale    string // empty for the default-locale passthrough
	Applied   int    // map entries substituted into the document
	Unmatched int    // map entries that found no home
	Skipped   string // non-empty when the unit was skipped, with the reason
	Err       error
}

// Report aggregates the results of one sync run.
type Report struct {
	Results []PageResult
	Slugs   []string // slugs that produced output, for sitemap generation
}

// Failed returns the number of units that errored.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Unmatched returns the total number of fragments that found no home.
func (r *Report) Unmatched() int {
	n := 0
	for _, res := range r.Results {
		n += res.Unmatched
	}
	return n
}

// Run syncs every page in every configured locale. The returned error is
// non-nil only for run-level failures (no page source at all, cancelled
// context); per-unit failures land in the report.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	pages, err := s.resolvePages(ctx)
	if err != nil {
		return nil, err
	}
	if s.opts.OnlySlug != "" {
		pages = filterSlug(pages, s.opts.OnlySlug)
	}
	log.Infof("Syncing %d pages to %d locales", len(pages), len(s.opts.Locales))

	report := &Report{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, page := range pages {
		page := page
		g.Go(func() error {
			results, wrote := s.syncPage(gctx, page)
			mu.Lock()
			report.Results = append(report.Results, results...)
			if wrote {
				report.Slugs = append(report.Slugs, page.Slug)
			}
			mu.Unlock()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// resolvePages lists pages from the content API, falling back to a site
// crawl when the listing is unavailable.
func (s *Service) resolvePages(ctx context.Context) ([]content.Page, error) {
	pages, err := s.supplier.Pages(ctx)
	if err == nil {
		return pages, nil
	}
	if s.crawler == nil {
		return nil, err
	}

	log.Warnf("Page listing unavailable (%v), falling back to crawl", err)
	paths, crawlErr := s.crawler.Discover(ctx)
	if crawlErr != nil {
		return nil, crawlErr
	}
	pages = make([]content.Page, 0, len(paths))
	for _, path := range paths {
		pages = append(pages, content.Page{ID: path, Slug: path})
	}
	return pages, nil
}

// filterSlug keeps only the page matching slug, slash-insensitively.
func filterSlug(pages []content.Page, slug string) []content.Page {
	want := strings.Trim(slug, "/")
	out := pages[:0]
	for _, p := range pages {
		if strings.Trim(p.Slug, "/") == want {
			out = append(out, p)
		}
	}
	return out
}

// syncPage fetches one page's shared inputs and translates it into every
// target locale. wrote reports whether the default document reached the
// sink (and the slug belongs in the sitemap).
func (s *Service) syncPage(ctx context.Context, page content.Page) ([]PageResult, bool) {
	logger := log.WithField("page", page.Slug)

	doc, err := s.supplier.RenderedHTML(ctx, page.Slug)
	if err != nil {
		logger.Warnf("Skipping page, rendered document unavailable: %v", err)
		return []PageResult{{Page: page.Slug, Err: err}}, false
	}

	results := make([]PageResult, 0, len(s.opts.Locales)+1)

	// Default locale passes through untranslated.
	if err := s.sink.WritePage("", page.Slug, doc); err != nil {
		results = append(results, PageResult{Page: page.Slug, Err: err})
		return results, false
	}
	results = append(results, PageResult{Page: page.Slug})

	if s.downloader != nil {
		urls := assets.Collect(doc, s.opts.SiteBaseURL)
		fetched, failed := s.downloader.Download(ctx, urls)
		if fetched+failed > 0 {
			logger.Debugf("Assets: %d fetched, %d failed", fetched, failed)
		}
	}

	defaultTree, err := s.supplier.Tree(ctx, page.ID, s.opts.DefaultLocale)
	if err != nil {
		logger.Warnf("Default content tree unavailable: %v", err)
	}

	for _, locale := range s.opts.Locales {
		results = append(results, s.syncLocale(ctx, page, defaultTree, doc, locale))
	}
	return results, true
}

// syncLocale runs one (page, locale) translation unit end to end.
func (s *Service) syncLocale(ctx context.Context, page content.Page, defaultTree *siteloc.ContentTree, doc, locale string) PageResult {
	res := PageResult{Page: page.Slug, Locale: locale}
	logger := log.WithFields(log.Fields{"page": page.Slug, "locale": locale})

	if defaultTree.Empty() {
		res.Skipped = "missing default content tree"
		return res
	}

	targetTree, err := s.supplier.Tree(ctx, page.ID, locale)
	if err != nil {
		res.Err = err
		return res
	}
	if targetTree.Empty() {
		res.Skipped = "missing target content tree"
		return res
	}

	m := s.translationMap(page.ID, locale, defaultTree, targetTree)
	if m.Len() == 0 {
		res.Skipped = "no translations found"
		return res
	}

	// Metadata substitution runs before fragment translation, on the
	// same document instance.
	if meta, err := s.supplier.Metadata(ctx, page.ID, locale); err != nil {
		logger.Debugf("Metadata unavailable: %v", err)
	} else if !meta.Empty() {
		doc = seo.Apply(doc, meta)
	}

	translated, report := siteloc.ApplyTranslationsReport(doc, m)
	translated = siteloc.RestoreAttributes(doc, translated)
	translated = setDocumentLocale(translated, locale)

	if err := s.sink.WritePage(locale, page.Slug, translated); err != nil {
		res.Err = err
		return res
	}

	res.Applied = report.Applied
	res.Unmatched = report.UnmatchedCount()
	if res.Unmatched > 0 {
		logger.Debugf("%d fragments found no home", res.Unmatched)
	}
	return res
}

// translationMap returns the cached map for this tree pair or builds and
// caches a fresh one. Cache trouble is never fatal.
func (s *Service) translationMap(pageID, locale string, defaultTree, targetTree *siteloc.ContentTree) *siteloc.TranslationMap {
	key := siteloc.MapCacheKey(pageID, locale, siteloc.HashTrees(defaultTree, targetTree))
	if m, ok := cache.GetMap(s.mapCache, key); ok {
		return m
	}
	m := siteloc.BuildTranslationMap(defaultTree, targetTree)
	if err := cache.SetMap(s.mapCache, key, m); err != nil {
		log.Warnf("Caching translation map failed: %v", err)
	}
	return m
}
