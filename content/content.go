// Package content talks to the content API: structured per-page content
// trees, page listings, SEO metadata and the rendered default-locale
// documents the translation engine consumes.
package content

import (
	"context"

	"github.com/nordbloc/siteloc"
	"github.com/nordbloc/siteloc/seo"
)

// Page is one entry of the site's page listing.
type Page struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title,omitempty"`
}

// Supplier provides everything the sync pipeline needs per page. Absence of
// content for a page/locale is signalled with a nil tree and nil error: the
// engine treats it as "no translation possible", not as a failure.
type Supplier interface {
	// Pages lists the site's pages.
	Pages(ctx context.Context) ([]Page, error)

	// Tree returns the structured content tree for a page in one locale,
	// or (nil, nil) when the locale has no content for that page.
	Tree(ctx context.Context, pageID, locale string) (*siteloc.ContentTree, error)

	// Metadata returns the SEO fields for a page in one locale, or
	// (nil, nil) when none are defined.
	Metadata(ctx context.Context, pageID, locale string) (*seo.Meta, error)

	// RenderedHTML returns the fully rendered default-locale document
	// for a page slug.
	RenderedHTML(ctx context.Context, slug string) (string, error)
}
