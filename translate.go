package siteloc

import (
	"regexp"
	"strings"
)

// ApplyReport summarizes one translator run over a rendered document.
// Unmatched fragments degrade output quality, not correctness; the report
// exists so callers can observe drift between export and rendered markup.
type ApplyReport struct {
	Applied   int      // map entries that found a home in the document
	Unmatched []string // source fragments that matched nothing
}

// UnmatchedCount returns the number of entries that found no home.
func (r *ApplyReport) UnmatchedCount() int {
	if r == nil {
		return 0
	}
	return len(r.Unmatched)
}

// ApplyTranslations applies a translation map to a rendered default-locale
// document and returns the localized document. See ApplyTranslationsReport.
func ApplyTranslations(doc string, m *TranslationMap) string {
	out, _ := ApplyTranslationsReport(doc, m)
	return out
}

// ApplyTranslationsReport applies a translation map to a rendered document,
// longest source fragment first, and reports how many entries matched.
//
// Each entry walks a strict priority ladder: exact substring match, then
// markup-tolerant matching for fragments containing tags, then a line-split
// fallback for multi-line fragments, then single-line whitespace variants.
// The first rung that matches wins and later rungs are skipped. An entry
// that matches nothing is recorded and skipped; the function never fails.
//
// An empty map returns the document unchanged, byte for byte. Otherwise the
// working copy first gets a one-time attribute-order normalization of
// anchor tags so export-shaped fragments can match the platform's
// serialization.
func ApplyTranslationsReport(doc string, m *TranslationMap) (string, *ApplyReport) {
	report := &ApplyReport{}
	if m.Len() == 0 {
		return doc, report
	}

	work := normalizeAnchorAttrOrder(doc)
	for _, pair := range m.PairsByLength() {
		if pair.Source == pair.Target {
			continue
		}
		if applyPair(&work, pair) {
			report.Applied++
		} else {
			report.Unmatched = append(report.Unmatched, pair.Source)
		}
	}
	return work, report
}

// applyPair runs one map entry down the matching ladder.
func applyPair(doc *string, pair FragmentPair) bool {
	if strings.Contains(*doc, pair.Source) {
		*doc = strings.ReplaceAll(*doc, pair.Source, pair.Target)
		return true
	}

	if strings.Contains(pair.Source, "<") && applyMarkupTolerant(doc, pair) {
		return true
	}

	if countNonEmptyLines(pair.Source) > 1 {
		return applyLineSplit(doc, pair)
	}
	return applyVariants(doc, pair)
}

// applyMarkupTolerant matches a markup fragment against the document under
// increasing tolerance: the class-preserving normalized form exactly, then
// as a pattern absorbing a platform-injected class token and an optional
// target="_blank", then both attempts again with anchors reduced to href
// only. The replacement is the normalized target fragment; presentation
// attributes lost here are reunited by RestoreAttributes.
func applyMarkupTolerant(doc *string, pair FragmentPair) bool {
	src := NormalizeMarkup(pair.Source, true)
	dst := NormalizeMarkup(pair.Target, false)

	if strings.Contains(*doc, src) {
		*doc = strings.ReplaceAll(*doc, src, dst)
		return true
	}
	if re := classTolerantPattern(src); re != nil && re.MatchString(*doc) {
		*doc = re.ReplaceAllLiteralString(*doc, dst)
		return true
	}

	hrefSrc := reduceAnchorsToHref(src)
	hrefDst := reduceAnchorsToHref(dst)
	if hrefSrc == src {
		return false
	}
	if strings.Contains(*doc, hrefSrc) {
		*doc = strings.ReplaceAll(*doc, hrefSrc, hrefDst)
		return true
	}
	if re := hrefTolerantPattern(hrefSrc); re != nil && re.MatchString(*doc) {
		*doc = re.ReplaceAllLiteralString(*doc, hrefDst)
		return true
	}
	return false
}

// classTolerantPattern compiles a fragment into a pattern that additionally
// accepts extra whitespace-prefixed class tokens inside class attributes and
// an optional target="_blank" right after an href. Those are the two
// variations the rendering platform injects without touching content. The
// target slot follows the href because attribute-order normalization hoists
// href to the front of every anchor before matching.
func classTolerantPattern(form string) *regexp.Regexp {
	p := regexp.QuoteMeta(form)
	p = quotedClassAttrRe.ReplaceAllString(p, `class="$1(?:\s[0-9A-Za-z_-]+)*"`)
	p = quotedHrefAttrRe.ReplaceAllString(p, `href="$1"(?:\s+target="_blank")?`)
	re, err := regexp.Compile(p)
	if err != nil {
		return nil
	}
	return re
}

// quotedClassAttrRe and quotedHrefAttrRe find attributes inside an
// already-quoted pattern. QuoteMeta leaves letters, quotes and spaces
// untouched, so the attribute shape survives quoting.
var (
	quotedClassAttrRe = regexp.MustCompile(`class="([^"]*)"`)
	quotedHrefAttrRe  = regexp.MustCompile(`href="([^"]*)"`)
)

// hrefTolerantPattern compiles an href-reduced fragment into a pattern whose
// anchor tags accept arbitrary attributes around the href, dropping any
// class constraint entirely.
func hrefTolerantPattern(form string) *regexp.Regexp {
	var b strings.Builder
	last := 0
	for _, loc := range anchorOpenTagRe.FindAllStringIndex(form, -1) {
		b.WriteString(regexp.QuoteMeta(form[last:loc[0]]))
		tag := form[loc[0]:loc[1]]
		if m := hrefAttrRe.FindStringSubmatch(tag); m != nil {
			b.WriteString(`<a[^>]*\bhref="` + regexp.QuoteMeta(m[1]) + `"[^>]*>`)
		} else {
			b.WriteString(`<a[^>]*>`)
		}
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(form[last:]))
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// applyLineSplit replaces each non-empty line of a multi-line fragment
// independently wherever it occurs verbatim. Lines identical to their
// translation are skipped.
func applyLineSplit(doc *string, pair FragmentPair) bool {
	srcLines := strings.Split(pair.Source, "\n")
	dstLines := strings.Split(pair.Target, "\n")

	n := len(srcLines)
	if len(dstLines) < n {
		n = len(dstLines)
	}
	applied := false
	for i := 0; i < n; i++ {
		line := srcLines[i]
		if strings.TrimSpace(line) == "" || line == dstLines[i] {
			continue
		}
		if strings.Contains(*doc, line) {
			*doc = strings.ReplaceAll(*doc, line, dstLines[i])
			applied = true
		}
	}
	return applied
}

// applyVariants tries a single-line fragment under whitespace transforms:
// as given, trimmed, newlines collapsed to a space, newlines removed, and
// all whitespace runs collapsed. The same transform is applied to the
// target before substitution; the first variant found in the document wins.
func applyVariants(doc *string, pair FragmentPair) bool {
	transforms := []func(string) string{
		func(s string) string { return s },
		strings.TrimSpace,
		func(s string) string { return strings.ReplaceAll(s, "\n", " ") },
		func(s string) string { return strings.ReplaceAll(s, "\n", "") },
		collapseWhitespace,
	}
	for _, tf := range transforms {
		src := tf(pair.Source)
		if src == "" {
			continue
		}
		if strings.Contains(*doc, src) {
			dst := tf(pair.Target)
			if src == dst {
				return true
			}
			*doc = strings.ReplaceAll(*doc, src, dst)
			return true
		}
	}
	return false
}

func countNonEmptyLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
