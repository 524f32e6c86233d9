// Package seo substitutes localized metadata (title, description,
// Open Graph and Twitter fields) directly into a rendered document.
//
// Metadata bypasses the fragment-matching pipeline: the fields live in
// fixed, findable markers (<title>, <meta ...>) and are replaced in place,
// before fragment-based translation runs on the same document. The
// substitutions are surgical so the markers the translation engine scans
// for are never disturbed.
package seo

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nordbloc/siteloc"
)

// Meta holds the localized SEO fields of one page.
type Meta struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	OGImage       string `json:"ogImage,omitempty"`
	TwitterTitle  string `json:"twitterTitle,omitempty"`
	Canonical     string `json:"canonical,omitempty"`
}

// Empty reports whether no field is set.
func (m *Meta) Empty() bool {
	return m == nil || *m == Meta{}
}

var (
	titleRe     = regexp.MustCompile(`(?s)(<title[^>]*>).*?(</title>)`)
	canonicalRe = regexp.MustCompile(`(<link\b[^>]*\brel="canonical"[^>]*\bhref=")[^"]*(")`)
)

// Apply substitutes the set fields of m into the document. Unset fields
// leave their markers untouched; documents missing a marker are returned
// otherwise unchanged.
func Apply(doc string, m *Meta) string {
	if m.Empty() {
		return doc
	}

	if m.Title != "" {
		doc = titleRe.ReplaceAllString(doc, "${1}"+escapeReplacement(m.Title)+"${2}")
	}
	if m.Description != "" {
		doc = replaceMetaContent(doc, "name", "description", m.Description)
	}
	if m.OGTitle != "" {
		doc = replaceMetaContent(doc, "property", "og:title", m.OGTitle)
	}
	if m.OGDescription != "" {
		doc = replaceMetaContent(doc, "property", "og:description", m.OGDescription)
	}
	if m.OGImage != "" {
		doc = replaceMetaContent(doc, "property", "og:image", m.OGImage)
	}
	if m.TwitterTitle != "" {
		doc = replaceMetaContent(doc, "name", "twitter:title", m.TwitterTitle)
	}
	if m.Canonical != "" {
		doc = canonicalRe.ReplaceAllString(doc, "${1}"+escapeReplacement(m.Canonical)+"${2}")
	}
	return doc
}

// replaceMetaContent rewrites the content attribute of one meta tag,
// identified by its name or property attribute. Attribute order within the
// tag does not matter.
func replaceMetaContent(doc, keyAttr, keyValue, content string) string {
	// content before the key attribute
	before := regexp.MustCompile(
		`(<meta\b[^>]*\bcontent=")[^"]*("[^>]*\b` + keyAttr + `="` + regexp.QuoteMeta(keyValue) + `")`)
	// content after the key attribute
	after := regexp.MustCompile(
		`(<meta\b[^>]*\b` + keyAttr + `="` + regexp.QuoteMeta(keyValue) + `"[^>]*\bcontent=")[^"]*(")`)

	escaped := escapeReplacement(html.EscapeString(content))
	if after.MatchString(doc) {
		return after.ReplaceAllString(doc, "${1}"+escaped+"${2}")
	}
	return before.ReplaceAllString(doc, "${1}"+escaped+"${2}")
}

// escapeReplacement protects $ signs in user content from being read as
// regexp replacement references.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// AlternateLinks renders rel=alternate hreflang link tags for every locale
// variant of a page, for injection into the head of each variant.
func AlternateLinks(siteBaseURL, slug string, locales []string) string {
	var b strings.Builder
	for _, locale := range locales {
		fmt.Fprintf(&b, "<link rel=\"alternate\" hreflang=\"%s\" href=\"%s\"/>\n",
			siteloc.ToHTMLLang(locale), LocaleURL(siteBaseURL, slug, locale))
	}
	return b.String()
}

// LocaleURL returns the published URL of a page's locale variant. Locale
// variants live under a lowercased base-language path prefix.
func LocaleURL(base, slug, locale string) string {
	slug = strings.TrimLeft(slug, "/")
	if slug != "" {
		slug = "/" + slug
	}
	return strings.TrimRight(base, "/") + "/" + siteloc.BaseLang(locale) + slug
}
