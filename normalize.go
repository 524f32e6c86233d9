package siteloc

import (
	"html"
	"regexp"
	"strings"
)

var (
	// openTagRe matches any opening (or void) tag with double-quoted
	// attribute values, the shape the rendering platform serializes.
	openTagRe = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)((?:\s+[a-zA-Z_:][a-zA-Z0-9_:.-]*(?:="[^"]*")?)*)\s*(/?)>`)

	// tagAttrRe matches one attribute inside an opening tag.
	tagAttrRe = regexp.MustCompile(`([a-zA-Z_:][a-zA-Z0-9_:.-]*)(?:="([^"]*)")?`)

	anchorOpenTagRe = regexp.MustCompile(`<a\b[^>]*>`)
	hrefAttrRe      = regexp.MustCompile(`\bhref="([^"]*)"`)

	platformIDAttrRe     = regexp.MustCompile(`\s+data-w-id="[^"]*"`)
	selfClosingBrRe      = regexp.MustCompile(`<br\s*/?>`)
	anchorTargetAttrRe   = regexp.MustCompile(`(<a\b[^>]*?)\s+target="[^"]*"`)
	anchorHreflangAttrRe = regexp.MustCompile(`(<a\b[^>]*?)\s+hreflang="[^"]*"`)

	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// NormalizeMarkup prepares a markup fragment for comparison against the
// rendered document: platform-injected identifier attributes are removed,
// self-closing line breaks are canonicalized and HTML entities decoded.
//
// With stripPresentation set, target= and hreflang= attributes are also
// removed from anchors. That form is used on the pattern side only; the
// presentation attributes of the live document are reunited with the
// substituted content by RestoreAttributes.
func NormalizeMarkup(s string, stripPresentation bool) string {
	s = platformIDAttrRe.ReplaceAllString(s, "")
	s = selfClosingBrRe.ReplaceAllString(s, "<br>")
	s = html.UnescapeString(s)
	if stripPresentation {
		s = anchorTargetAttrRe.ReplaceAllString(s, "$1")
		s = anchorHreflangAttrRe.ReplaceAllString(s, "$1")
	}
	return s
}

// normalizeAnchorAttrOrder hoists the href attribute to the front of every
// anchor tag. The structured export always serializes href first; the
// rendering platform does not, and exact matching depends on agreement.
func normalizeAnchorAttrOrder(doc string) string {
	return anchorOpenTagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		m := openTagRe.FindStringSubmatch(tag)
		if m == nil {
			return tag
		}
		attrs := parseTagAttrs(m[2])
		if len(attrs) < 2 || attrs[0].name == "href" {
			return tag
		}
		var href *tagAttr
		rest := make([]tagAttr, 0, len(attrs))
		for i := range attrs {
			if attrs[i].name == "href" && href == nil {
				href = &attrs[i]
				continue
			}
			rest = append(rest, attrs[i])
		}
		if href == nil {
			return tag
		}
		return buildOpenTag("a", append([]tagAttr{*href}, rest...), m[3] == "/")
	})
}

// reduceAnchorsToHref rewrites every anchor opening tag of a fragment to
// carry only its href attribute. Used for locales where the structured
// export has lost class parity with the rendered markup.
func reduceAnchorsToHref(s string) string {
	return anchorOpenTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		if m := hrefAttrRe.FindStringSubmatch(tag); m != nil {
			return `<a href="` + m[1] + `">`
		}
		return "<a>"
	})
}

// collapseWhitespace folds every whitespace run into a single space.
func collapseWhitespace(s string) string {
	return whitespaceRunRe.ReplaceAllString(s, " ")
}

// tagAttr is one parsed attribute of an opening tag. Bare attributes
// (no value) keep bare=true so serialization round-trips.
type tagAttr struct {
	name  string
	value string
	bare  bool
}

// parseTagAttrs parses the attribute list portion of an opening tag.
func parseTagAttrs(s string) []tagAttr {
	matches := tagAttrRe.FindAllStringSubmatch(s, -1)
	attrs := make([]tagAttr, 0, len(matches))
	for _, m := range matches {
		attrs = append(attrs, tagAttr{
			name:  m[1],
			value: m[2],
			bare:  !strings.Contains(m[0], `="`),
		})
	}
	return attrs
}

// buildOpenTag serializes an opening tag from its parsed parts.
func buildOpenTag(name string, attrs []tagAttr, selfClosing bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		if !a.bare {
			b.WriteString(`="`)
			b.WriteString(a.value)
			b.WriteByte('"')
		}
	}
	if selfClosing {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}
