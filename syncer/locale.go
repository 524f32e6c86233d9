package syncer

import (
	"regexp"

	"github.com/nordbloc/siteloc"
)

var (
	htmlOpenTagRe = regexp.MustCompile(`<html\b[^>]*>`)
	langAttrRe    = regexp.MustCompile(`\slang="[^"]*"`)
	dirAttrRe     = regexp.MustCompile(`\sdir="[^"]*"`)
)

// setDocumentLocale rewrites the <html> element's lang attribute for the
// target locale and sets dir="rtl" for right-to-left locales. Only the
// first <html> tag is touched; documents without one come back unchanged.
func setDocumentLocale(doc, locale string) string {
	loc := htmlOpenTagRe.FindStringIndex(doc)
	if loc == nil {
		return doc
	}

	tag := doc[loc[0]:loc[1]]
	tag = langAttrRe.ReplaceAllString(tag, "")
	tag = dirAttrRe.ReplaceAllString(tag, "")

	attrs := ` lang="` + siteloc.ToHTMLLang(locale) + `"`
	if siteloc.IsRTL(locale) {
		attrs += ` dir="rtl"`
	}
	tag = "<html" + attrs + tag[len("<html"):]

	return doc[:loc[0]] + tag + doc[loc[1]:]
}
