package siteloc

import "regexp"

// anchorRe matches an anchor element with an href attribute, capturing the
// href value and the inner markup. Inner markup may span lines.
var anchorRe = regexp.MustCompile(`(?s)<a\b[^>]*\bhref="([^"]*)"[^>]*>(.*?)</a>`)

// AnchorDescriptor describes one anchor element found in an inline-markup
// fragment. Normalized is the matching key: href and inner text with every
// incidental attribute elided.
type AnchorDescriptor struct {
	Href       string // href attribute value
	Text       string // inner markup (visible text, possibly with formatting)
	Markup     string // the full original anchor markup
	Normalized string // <a href="..">text</a> with incidental attributes stripped
}

// ExtractAnchors returns the anchors of a markup fragment in document order.
// Anchors without an href attribute are not returned; they cannot be paired
// across locales.
func ExtractAnchors(markup string) []AnchorDescriptor {
	matches := anchorRe.FindAllStringSubmatch(markup, -1)
	if len(matches) == 0 {
		return nil
	}
	anchors := make([]AnchorDescriptor, 0, len(matches))
	for _, m := range matches {
		anchors = append(anchors, AnchorDescriptor{
			Href:       m[1],
			Text:       m[2],
			Markup:     m[0],
			Normalized: NormalizeAnchor(m[1], m[2]),
		})
	}
	return anchors
}

// NormalizeAnchor renders an anchor in its attribute-elided form, the shape
// used to pair anchors between the default and target locale exports.
func NormalizeAnchor(href, text string) string {
	return `<a href="` + href + `">` + text + `</a>`
}
