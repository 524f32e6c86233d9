package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nordbloc/siteloc"
)

// sitemapURLSet is the sitemap.xml document root.
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string             `xml:"loc"`
	Alternates []sitemapAlternate `xml:"xhtml:link"`
}

type sitemapAlternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// WriteSitemap writes sitemap.xml covering every page in every locale, each
// entry cross-referencing its locale variants as hreflang alternates.
// defaultLocale pages live at the site root; target locales under their
// base-language prefix.
func WriteSitemap(dir, siteBaseURL, defaultLocale string, locales, slugs []string) error {
	base := strings.TrimRight(siteBaseURL, "/")

	urlset := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}

	for _, slug := range slugs {
		var alternates []sitemapAlternate
		for _, locale := range append([]string{defaultLocale}, locales...) {
			alternates = append(alternates, sitemapAlternate{
				Rel:      "alternate",
				Hreflang: siteloc.ToHTMLLang(locale),
				Href:     pageURL(base, defaultLocale, locale, slug),
			})
		}
		for _, locale := range append([]string{defaultLocale}, locales...) {
			urlset.URLs = append(urlset.URLs, sitemapURL{
				Loc:        pageURL(base, defaultLocale, locale, slug),
				Alternates: alternates,
			})
		}
	}

	body, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return &siteloc.OutputError{Path: "sitemap.xml", Message: "encoding sitemap", Cause: err}
	}
	doc := xml.Header + string(body) + "\n"

	dest := filepath.Join(dir, "sitemap.xml")
	if err := os.WriteFile(dest, []byte(doc), 0o644); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "writing sitemap", Cause: err}
	}
	return nil
}

// WriteRobots writes a robots.txt referencing the sitemap.
func WriteRobots(dir, siteBaseURL string) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n",
		strings.TrimRight(siteBaseURL, "/"))

	dest := filepath.Join(dir, "robots.txt")
	if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
		return &siteloc.OutputError{Path: dest, Message: "writing robots.txt", Cause: err}
	}
	return nil
}

// pageURL returns the published URL of a page variant.
func pageURL(base, defaultLocale, locale, slug string) string {
	slug = strings.Trim(slug, "/")
	if slug != "" {
		slug = "/" + slug
	}
	if siteloc.SameLocale(locale, defaultLocale) {
		return base + slug + "/"
	}
	return base + "/" + siteloc.BaseLang(locale) + slug + "/"
}
